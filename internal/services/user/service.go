package user

import (
	"context"

	"github.com/aweston/charkeep/internal/dependencies/clock"
	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/storage"
)

// PasswordHasher hashes plaintext passwords for storage
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Params are the writable fields of a user record
type Params struct {
	Username      string
	Email         string
	Password      string
	PersonalPhone string
}

// Detail is a user with its relations resolved
type Detail struct {
	User         *model.User
	Characters   []*model.Character
	ParentPhones []*model.ParentPhone
}

// Service handles user CRUD and parent phone management
type Service struct {
	storage storage.Storage
	hasher  PasswordHasher
	clock   clock.Clock
}

// New creates a new user Service
func New(storage storage.Storage, hasher PasswordHasher, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		clock:   clock,
	}
}

// Create stores a new user with a hashed password
func (s *Service) Create(ctx context.Context, params Params) (*model.User, error) {
	hash, err := s.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		Username:      params.Username,
		PasswordHash:  hash,
		Email:         params.Email,
		PersonalPhone: params.PersonalPhone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// GetDetail retrieves a user with its characters and parent phones
func (s *Service) GetDetail(ctx context.Context, id model.UserID) (*Detail, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user)
}

// List returns all users in insertion order
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.storage.ListUsers(ctx)
}

// ListDetails returns all users with relations resolved, in insertion order
func (s *Service) ListDetails(ctx context.Context) ([]*Detail, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(users))
	for _, user := range users {
		detail, err := s.resolve(ctx, user)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// Update replaces a user record in full, re-hashing the given password.
// The ID and creation time are preserved.
func (s *Service) Update(ctx context.Context, id model.UserID, params Params) (*model.User, error) {
	existing, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:            id,
		Username:      params.Username,
		PasswordHash:  hash,
		Email:         params.Email,
		PersonalPhone: params.PersonalPhone,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     s.clock.Now(),
	}

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user and cascades to its characters and parent phones
func (s *Service) Delete(ctx context.Context, id model.UserID) error {
	return s.storage.DeleteUser(ctx, id)
}

// AddParentPhone stores a parent contact number for a user
func (s *Service) AddParentPhone(ctx context.Context, userID model.UserID, phoneNumber, parentName string) (*model.ParentPhone, error) {
	phone := &model.ParentPhone{
		UserID:      userID,
		PhoneNumber: phoneNumber,
		ParentName:  parentName,
	}

	if err := s.storage.CreateParentPhone(ctx, phone); err != nil {
		return nil, err
	}

	return phone, nil
}

// ListParentPhones returns a user's parent phones in insertion order
func (s *Service) ListParentPhones(ctx context.Context, userID model.UserID) ([]*model.ParentPhone, error) {
	// Distinguish an unknown user from one with no phones
	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.storage.ListParentPhonesForUser(ctx, userID)
}

// DeleteParentPhone removes a parent phone by ID
func (s *Service) DeleteParentPhone(ctx context.Context, id model.PhoneID) error {
	return s.storage.DeleteParentPhone(ctx, id)
}

// resolve loads a user's relations
func (s *Service) resolve(ctx context.Context, user *model.User) (*Detail, error) {
	characters, err := s.storage.ListCharactersForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	phones, err := s.storage.ListParentPhonesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{
		User:         user,
		Characters:   characters,
		ParentPhones: phones,
	}, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Create(ctx context.Context, params Params) (*model.User, error)
	Get(ctx context.Context, id model.UserID) (*model.User, error)
	GetDetail(ctx context.Context, id model.UserID) (*Detail, error)
	List(ctx context.Context) ([]*model.User, error)
	ListDetails(ctx context.Context) ([]*Detail, error)
	Update(ctx context.Context, id model.UserID, params Params) (*model.User, error)
	Delete(ctx context.Context, id model.UserID) error
	AddParentPhone(ctx context.Context, userID model.UserID, phoneNumber, parentName string) (*model.ParentPhone, error)
	ListParentPhones(ctx context.Context, userID model.UserID) ([]*model.ParentPhone, error)
	DeleteParentPhone(ctx context.Context, id model.PhoneID) error
}

var _ ServiceInterface = (*Service)(nil)
