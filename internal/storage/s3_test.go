package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/shortflix/backend/internal/config"
)

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.ObjectStoreConfig{Bucket: "  ", Region: "us-east-1"})
	if err == nil || !strings.Contains(err.Error(), "bucket is required") {
		t.Fatalf("expected bucket error got %v", err)
	}
}

func TestS3StorageKeyAndLocation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.ObjectStoreConfig
		file    string
		wantKey string
		wantLoc string
	}{
		{
			name:    "prefixed",
			cfg:     config.ObjectStoreConfig{Bucket: "catalog", Prefix: "/snapshots/"},
			file:    "abc.json",
			wantKey: "snapshots/abc.json",
			wantLoc: "s3://catalog/snapshots/abc.json",
		},
		{
			name:    "publicURL",
			cfg:     config.ObjectStoreConfig{Bucket: "catalog", Prefix: "snapshots", PublicBaseURL: "https://cdn.example.com/"},
			file:    "/abc.json",
			wantKey: "snapshots/abc.json",
			wantLoc: "https://cdn.example.com/snapshots/abc.json",
		},
		{
			name:    "noPrefix",
			cfg:     config.ObjectStoreConfig{Bucket: "catalog"},
			file:    "abc.json",
			wantKey: "abc.json",
			wantLoc: "s3://catalog/abc.json",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newS3Storage(nil, tc.cfg)
			key := s.Key(tc.file)
			if key != tc.wantKey {
				t.Fatalf("expected key %q got %q", tc.wantKey, key)
			}
			if loc := s.location(key); loc != tc.wantLoc {
				t.Fatalf("expected location %q got %q", tc.wantLoc, loc)
			}
		})
	}
}

func TestS3StorageSaveRejectsEmptyKey(t *testing.T) {
	s := newS3Storage(nil, config.ObjectStoreConfig{Bucket: "catalog"})
	if _, err := s.Save(context.Background(), "/", strings.NewReader("{}")); err == nil {
		t.Fatal("expected empty key error")
	}
}
