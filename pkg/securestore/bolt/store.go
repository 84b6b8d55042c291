package boltsecurestore

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/btcsuite/btcwallet/snacl"
	bolt "go.etcd.io/bbolt"

	"github.com/etherkeep/etherkeep-daemon/pkg/securestore"
)

var (
	// RootKeyBucketName is the name of the root key store bucket.
	RootKeyBucketName = []byte("root")

	// encryptionKeyID is the name of the database key that stores the
	// encryption key, encrypted with a salted + hashed password. The
	// format is 32 bytes of salt, and the rest is encrypted key.
	encryptionKeyID = []byte("enckey")
)

type boltSecureStorage struct {
	db *bolt.DB

	encKeyMtx sync.RWMutex
	encKey    *snacl.SecretKey
}

// NewSecureStorage creates a bolt instance of the SecureStorage interface.
func NewSecureStorage(datadir, filename string) (securestore.SecureStorage, error) {
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		if err := os.MkdirAll(datadir, os.ModeDir|0755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(
		filepath.Join(datadir, filename), 0600,
		&bolt.Options{Timeout: 5 * time.Second},
	)
	if err != nil {
		return nil, err
	}

	// If the store's bucket doesn't exist, create it.
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(RootKeyBucketName)
		return err
	}); err != nil {
		return nil, err
	}

	// Return the DB wrapped in a SecureStorage object.
	return &boltSecureStorage{db: db, encKey: nil}, nil
}

// IsLocked returns whether the store is locked by checking if the encryption
// key is stored in-memory.
func (s *boltSecureStorage) IsLocked() bool {
	s.encKeyMtx.RLock()
	defer s.encKeyMtx.RUnlock()

	return s.encKey == nil
}

// Lock eventually locks the store by flushing the in-memory encryption key.
func (s *boltSecureStorage) Lock() {
	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	if s.encKey != nil {
		s.encKey.Zero()
		s.encKey = nil
	}
}

// CreateUnlock sets an encryption key if one is not already set, otherwise it
// checks if the password is correct for the stored encryption key.
func (s *boltSecureStorage) CreateUnlock(password *[]byte) error {
	// If the store is already unlocked there's nothing to do here.
	if !s.IsLocked() {
		return nil
	}

	if password == nil {
		return ErrPasswordRequired
	}

	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		dbKey := bucket.Get(encryptionKeyID)
		if len(dbKey) > 0 {
			// A key is already stored, so try to unlock with the password.
			encKey := &snacl.SecretKey{}
			if err := encKey.Unmarshal(dbKey); err != nil {
				return err
			}

			if err := encKey.DeriveKey(password); err != nil {
				return ErrInvalidPassword
			}

			s.encKey = encKey
			return nil
		}

		// The encryption key is not yet stored, so create a new one.
		encKey, err := snacl.NewSecretKey(
			password, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
		)
		if err != nil {
			return err
		}

		if err := bucket.Put(encryptionKeyID, encKey.Marshal()); err != nil {
			return err
		}

		s.encKey = encKey
		return nil
	})
}

// ChangePassword decrypts all the store's content with the old password and
// encrypts it again with the new one.
func (s *boltSecureStorage) ChangePassword(oldPw, newPw []byte) error {
	// The store must be already unlocked. This ensures that there already is a
	// key in the DB.
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if oldPw == nil || newPw == nil {
		return ErrPasswordRequired
	}

	// Check that old password is correct.
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}
		dbKey := bucket.Get(encryptionKeyID)
		// The encryption key must be present otherwise we are in the wrong
		// state to change the password.
		if len(dbKey) <= 0 {
			return ErrEncKeyNotFound
		}

		encKeyOld := &snacl.SecretKey{}
		if err := encKeyOld.Unmarshal(dbKey); err != nil {
			return err
		}

		if err := encKeyOld.DeriveKey(&oldPw); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}); err != nil {
		return err
	}

	encKeyNew, err := snacl.NewSecretKey(
		&newPw, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
	)
	if err != nil {
		return err
	}

	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	// Decrypt the whole DB with the old key and re-encrypt it with the new
	// one, all within the same write transaction so a failure leaves the
	// store untouched.
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(RootKeyBucketName)
		if root == nil {
			return ErrRootKeyBucketNotFound
		}

		if err := reencryptBucket(root, s.encKey, encKeyNew); err != nil {
			return err
		}

		if err := root.Put(encryptionKeyID, encKeyNew.Marshal()); err != nil {
			return err
		}

		s.encKey.Zero()
		s.encKey = encKeyNew
		return nil
	})
}

// CreateBucket creates a nested bucket into the root one.
func (s *boltSecureStorage) CreateBucket(key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingBucketKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenBucketKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}
		_, err := bucket.CreateBucketIfNotExists(key)
		return err
	})
}

// AddToBucket stores the provided data encrypted into the given bucket.
// If the bucket key is nil, the key/value entry is added to the root one.
func (s *boltSecureStorage) AddToBucket(bucketKey, key, value []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenDataKey
	}
	if len(value) <= 0 {
		return ErrMissingData
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			// If the bucket key is not nil, data must be added to the nested bucket.
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		// Encrypt value with encryption key.
		encryptedValue, err := s.encKey.Encrypt(value)
		if err != nil {
			return err
		}

		return bucket.Put(key, encryptedValue)
	})
}

// GetFromBucket retrieves data for the given key and bucket. If the bucket key
// is nil, data is retrieved from the root bucket.
func (s *boltSecureStorage) GetFromBucket(bucketKey, key []byte) ([]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	if len(key) <= 0 {
		return nil, ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return nil, ErrForbiddenDataKey
	}

	var value []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		encryptedValue := bucket.Get(key)
		if len(encryptedValue) <= 0 {
			return nil
		}

		v, err := s.encKey.Decrypt(encryptedValue)
		if err != nil {
			return err
		}

		value = make([]byte, len(v))
		copy(value, v)
		return nil
	}); err != nil {
		return nil, err
	}

	return value, nil
}

// GetAllFromBucket returns all data stored in the given bucket.
// If the bucket key is nil, the root bucket's own entries are returned.
func (s *boltSecureStorage) GetAllFromBucket(bucketKey []byte) (map[string][]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	res := make(map[string][]byte)
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		return bucket.ForEach(func(k, v []byte) error {
			if !bytes.Equal(k, encryptionKeyID) && v != nil {
				value, err := s.encKey.Decrypt(v)
				if err != nil {
					return err
				}
				res[string(k)] = value
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return res, nil
}

// ListBuckets returns the keys of all nested buckets.
func (s *boltSecureStorage) ListBuckets() ([][]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	var bucketKeys [][]byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		return bucket.ForEach(func(key, value []byte) error {
			if value == nil {
				bucketKey := make([]byte, len(key))
				copy(bucketKey, key)
				bucketKeys = append(bucketKeys, bucketKey)
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return bucketKeys, nil
}

// Close closes the underlying database and zeroes the encryption key stored
// in memory.
func (s *boltSecureStorage) Close() error {
	s.Lock()

	return s.db.Close()
}

// RemoveFromBucket removes the entry identified by the given key for the given
// bucket. If bucket key is nil, the entry is removed from the root bucket.
func (s *boltSecureStorage) RemoveFromBucket(bucketKey, key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenDataKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		return bucket.Delete(key)
	})
}

// RemoveBucket removes a nested bucket and all of its content.
func (s *boltSecureStorage) RemoveBucket(key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingBucketKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenBucketKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		return bucket.DeleteBucket(key)
	})
}

// Wipe drops every entry and nested bucket, encryption key included. After a
// wipe the store is locked and the next CreateUnlock starts from scratch.
func (s *boltSecureStorage) Wipe() error {
	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	if err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(RootKeyBucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucket(RootKeyBucketName)
		return err
	}); err != nil {
		return err
	}

	if s.encKey != nil {
		s.encKey.Zero()
		s.encKey = nil
	}
	return nil
}

func reencryptBucket(bucket *bolt.Bucket, oldKey, newKey *snacl.SecretKey) error {
	// collect first, bolt forbids writes while iterating with ForEach
	reencrypted := make(map[string][]byte)
	var nested [][]byte
	if err := bucket.ForEach(func(k, v []byte) error {
		if v == nil {
			nested = append(nested, append([]byte{}, k...))
			return nil
		}
		if bytes.Equal(k, encryptionKeyID) {
			return nil
		}

		decrypted, err := oldKey.Decrypt(v)
		if err != nil {
			return err
		}
		encrypted, err := newKey.Encrypt(decrypted)
		if err != nil {
			return err
		}
		reencrypted[string(k)] = encrypted
		return nil
	}); err != nil {
		return err
	}

	for k, v := range reencrypted {
		if err := bucket.Put([]byte(k), v); err != nil {
			return err
		}
	}
	for _, k := range nested {
		if err := reencryptBucket(bucket.Bucket(k), oldKey, newKey); err != nil {
			return err
		}
	}
	return nil
}
