package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shivam18213/distance-calculator/internal/domain"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisGeocodeCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGeocodeCache(client, ttl), mr
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	ctx := context.Background()

	entries := map[string]domain.Coordinates{
		"New York, NY":  {Lat: 40.7128, Lon: -74.0060},
		"Paris, France": {Lat: 48.8566, Lon: 2.3522},
	}

	if err := c.PutMany(ctx, entries); err != nil {
		t.Fatalf("put many: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"New York, NY", "Paris, France", "Unknown Town"})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got["Paris, France"] != entries["Paris, France"] {
		t.Errorf("Paris = %+v", got["Paris, France"])
	}
	if _, ok := got["Unknown Town"]; ok {
		t.Error("uncached address present in result")
	}
}

func TestRedisGeocodeCacheExpiry(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Berlin, Germany": {Lat: 52.52, Lon: 13.405}}); err != nil {
		t.Fatalf("put many: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"Berlin, Germany"})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expired entry still present: %+v", got)
	}
}

func TestRedisGeocodeCacheEmptyInput(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)

	got, err := c.GetMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len(got) = %d, want 0", len(got))
	}

	if err := c.PutMany(context.Background(), nil); err != nil {
		t.Fatalf("put many: %v", err)
	}
}
