package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/blob"
	"github.com/soulstitch/storefront/internal/docstore"
)

const photoSize = 512

var (
	ErrValidation = errors.New("invalid profile data")
	ErrNoAddress  = errors.New("no shipping address saved")
)

type Address struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// ProfileUpdater records the new photo URL on the account.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID string, in auth.ProfileUpdate) (auth.Profile, error)
}

type Service struct {
	store    docstore.Store
	blobs    blob.Store
	users    ProfileUpdater
	mediaURL string
	logger   *log.Logger
	now      func() time.Time
}

// NewService serves stored photos below mediaURL, e.g. "https://shop.example/media".
func NewService(store docstore.Store, blobs blob.Store, users ProfileUpdater, mediaURL string, logger *log.Logger) *Service {
	return &Service{
		store:    store,
		blobs:    blobs,
		users:    users,
		mediaURL: strings.TrimRight(mediaURL, "/"),
		logger:   logger,
		now:      time.Now,
	}
}

func PhotoKey(userID string) string {
	return "profile_pics/" + userID + ".jpg"
}

// UploadPhoto crops the image to a centred square, stores it as JPEG and
// points the user's photo URL at it.
func (s *Service) UploadPhoto(ctx context.Context, userID string, r io.Reader) (auth.Profile, error) {
	if err := auth.RequireUser(userID); err != nil {
		return auth.Profile{}, err
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return auth.Profile{}, fmt.Errorf("%w: unsupported image: %v", ErrValidation, err)
	}
	square := imaging.Fill(img, photoSize, photoSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return auth.Profile{}, fmt.Errorf("encode photo: %w", err)
	}

	key := PhotoKey(userID)
	size := buf.Len()
	if err := s.blobs.Put(ctx, key, "image/jpeg", &buf); err != nil {
		return auth.Profile{}, err
	}
	s.logger.Printf("profile photo stored for %s (%d bytes)", userID, size)

	// The version parameter makes clients drop their cached copy.
	url := fmt.Sprintf("%s/%s?v=%d", s.mediaURL, key, s.now().Unix())
	return s.users.UpdateProfile(ctx, userID, auth.ProfileUpdate{PhotoURL: &url})
}

func (s *Service) SaveAddress(ctx context.Context, userID string, a Address) (Address, error) {
	if err := auth.RequireUser(userID); err != nil {
		return Address{}, err
	}
	a = Address{
		Address: strings.TrimSpace(a.Address),
		City:    strings.TrimSpace(a.City),
		Pincode: strings.TrimSpace(a.Pincode),
	}
	if a.Address == "" || a.City == "" || a.Pincode == "" {
		return Address{}, fmt.Errorf("%w: address, city and pincode are required", ErrValidation)
	}

	err := s.store.Merge(ctx, docstore.Root("users").Doc(userID), map[string]any{"shippingAddress": a})
	if err != nil {
		return Address{}, fmt.Errorf("save address: %w", err)
	}
	return a, nil
}

func (s *Service) Address(ctx context.Context, userID string) (Address, error) {
	if err := auth.RequireUser(userID); err != nil {
		return Address{}, err
	}

	var doc struct {
		ShippingAddress *Address `json:"shippingAddress" bson:"shippingAddress"`
	}
	if err := s.store.Get(ctx, docstore.Root("users").Doc(userID), &doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Address{}, ErrNoAddress
		}
		return Address{}, fmt.Errorf("load address: %w", err)
	}
	if doc.ShippingAddress == nil {
		return Address{}, ErrNoAddress
	}
	return *doc.ShippingAddress, nil
}
