// Package cache: cache LRU in-process dengan TTL per entry dan invalidasi eksplisit.
// Setiap mutasi di service memanggil Invalidate / InvalidatePrefix untuk key yang terdampak.
package cache

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const defaultSize = 1024

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = defaultSize
	}
	c, _ := lru.New(size) // error hanya untuk size <= 0
	return &Store{lru: c, ttl: ttl, now: time.Now}
}

func (s *Store) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	raw, ok := s.lru.Get(key)
	if !ok {
		return nil, false
	}
	e := raw.(entry)
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		s.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any) {
	if s == nil {
		return
	}
	s.lru.Add(key, entry{value: value, expiresAt: s.now().Add(s.ttl)})
}

func (s *Store) Invalidate(keys ...string) {
	if s == nil {
		return
	}
	for _, k := range keys {
		s.lru.Remove(k)
	}
}

// InvalidatePrefix menghapus semua key dengan prefix tsb (misal "stats:").
func (s *Store) InvalidatePrefix(prefix string) {
	if s == nil {
		return
	}
	for _, k := range s.lru.Keys() {
		if ks, ok := k.(string); ok && strings.HasPrefix(ks, prefix) {
			s.lru.Remove(ks)
		}
	}
}

// UserKey: entry milik satu user diberi prefix "user:<id>:" supaya bisa di-invalidate sekaligus.
func UserKey(userID fmt.Stringer, name string) string {
	return "user:" + userID.String() + ":" + name
}

// InvalidateUser dipanggil setiap mutasi yang menyentuh data user tsb (XP, quest, reward, achievement).
func (s *Store) InvalidateUser(userID fmt.Stringer) {
	s.InvalidatePrefix("user:" + userID.String() + ":")
}

func (s *Store) Purge() {
	if s == nil {
		return
	}
	s.lru.Purge()
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.lru.Len()
}

// GetOrLoad: ambil dari cache, kalau miss panggil load lalu simpan (error tidak di-cache).
func GetOrLoad[T any](s *Store, key string, load func() (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if tv, ok := v.(T); ok {
			return tv, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	s.Set(key, v)
	return v, nil
}
