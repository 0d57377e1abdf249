package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"textparser/internal/domain"
)

var (
	bucketFiles = []byte("files")
	bucketMeta  = []byte("meta")
	keyStats    = []byte("corpus_stats")
)

// ManifestStore records per-file chunking state so directory runs can
// skip files that have not changed since the last run.
type ManifestStore struct {
	db *bbolt.DB
}

func NewManifestStore(path string) (*ManifestStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketFiles, bucketMeta}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ManifestStore{db: db}, nil
}

func (s *ManifestStore) DB() *bbolt.DB {
	return s.db
}

type fileMeta struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
	Size    int64  `json:"size"`
	Kind    string `json:"kind"`
	Chunks  int    `json:"chunks"`
}

func (s *ManifestStore) PutDocument(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := fileMeta{
			Path:    doc.Path,
			ModTime: doc.ModTime.Unix(),
			Size:    doc.Size,
			Kind:    doc.Kind,
			Chunks:  doc.Chunks,
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketFiles).Put([]byte(doc.ID), data)
	})
}

func (s *ManifestStore) GetDocument(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketFiles).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		var meta fileMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = domain.Document{
			ID:      id,
			Path:    meta.Path,
			ModTime: time.Unix(meta.ModTime, 0),
			Size:    meta.Size,
			Kind:    meta.Kind,
			Chunks:  meta.Chunks,
		}
		return nil
	})
	return doc, err
}

func (s *ManifestStore) DeleteDocument(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFiles).Delete([]byte(id))
	})
}

func (s *ManifestStore) ListDocuments() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		return b.ForEach(func(k, v []byte) error {
			var meta fileMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, domain.Document{
				ID:      string(k),
				Path:    meta.Path,
				ModTime: time.Unix(meta.ModTime, 0),
				Size:    meta.Size,
				Kind:    meta.Kind,
				Chunks:  meta.Chunks,
			})
			return nil
		})
	})
	return docs, err
}

func (s *ManifestStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *ManifestStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyStats, data)
	})
}

func (s *ManifestStore) Close() error {
	return s.db.Close()
}
