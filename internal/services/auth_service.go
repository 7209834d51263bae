package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"pazar/internal/apperrors"
	"pazar/internal/models"
	"pazar/internal/repositories"
)

// Token lifetimes per principal kind.
const (
	storeTokenDuration    = 7 * 24 * time.Hour
	customerTokenDuration = 7 * 24 * time.Hour
	adminTokenDuration    = 24 * time.Hour
)

// Principal is the sum of the three claim shapes a valid token can carry.
// Stores and customers are disjoint identity spaces: the same email can exist
// in both, and a token only ever authenticates one of them.
type Principal interface {
	principal()
}

// StoreClaims identifies an authenticated store account.
type StoreClaims struct {
	StoreID string
	Email   string
}

// CustomerClaims identifies an authenticated customer account.
type CustomerClaims struct {
	UserID string
	Email  string
}

// AdminClaims identifies the configured administrator.
type AdminClaims struct {
	Username string
}

func (StoreClaims) principal()    {}
func (CustomerClaims) principal() {}
func (AdminClaims) principal()    {}

// AuthService handles registration, login and token issuance for all three
// principal kinds. The admin is a configured credential pair, not a row.
type AuthService struct {
	storeRepo     repositories.StoreRepository
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	adminUsername string
	adminPassword string
}

// NewAuthService creates a new AuthService.
func NewAuthService(storeRepo repositories.StoreRepository, userRepo repositories.UserRepository, jwtSecret, adminUsername, adminPassword string) *AuthService {
	return &AuthService{
		storeRepo:     storeRepo,
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// StoreRegistration carries the fields of a store signup request.
type StoreRegistration struct {
	Name        string
	Owner       string
	Email       string
	Phone       string
	Description string
	Password    string
}

// RegisterStore creates a store account in the pending, inactive state. Email
// and phone must be unique across all stores. No token is issued; a store
// becomes usable only after moderation.
func (s *AuthService) RegisterStore(reg StoreRegistration) (*models.Store, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if reg.Name == "" || reg.Owner == "" || email == "" || reg.Phone == "" || reg.Password == "" {
		return nil, apperrors.BadRequest("name, owner, email, phone and password are required")
	}

	if existing, err := s.storeRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, apperrors.Conflict("email", fmt.Sprintf("email '%s' already registered", email))
	}
	if existing, err := s.storeRepo.GetByPhone(reg.Phone); err == nil && existing != nil {
		return nil, apperrors.Conflict("phone", fmt.Sprintf("phone '%s' already registered", reg.Phone))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	store := &models.Store{
		Name:         reg.Name,
		Owner:        reg.Owner,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        reg.Phone,
		Description:  reg.Description,
		Status:       models.StorePending,
		Active:       false,
		Products:     models.ProductList{},
		CreatedAt:    time.Now(),
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// RegisterCustomer creates a customer account and, unlike store registration,
// logs the customer in immediately.
func (s *AuthService) RegisterCustomer(name, email, password, phone string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return "", nil, apperrors.BadRequest("name, email and password are required")
	}

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return "", nil, apperrors.Conflict("email", fmt.Sprintf("email '%s' already registered", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
		Favorites:    models.FavoriteList{},
		Cart:         models.CartList{},
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(jwt.MapClaims{
		"kind":   "user",
		"userId": user.ID,
		"email":  user.Email,
	}, customerTokenDuration)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginStore authenticates a store account and returns a 7-day token.
func (s *AuthService) LoginStore(email, password string) (string, *models.Store, error) {
	store, err := s.storeRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.signToken(jwt.MapClaims{
		"kind":    "store",
		"storeId": store.ID,
		"email":   store.Email,
	}, storeTokenDuration)
	if err != nil {
		return "", nil, err
	}
	return token, store, nil
}

// LoginCustomer authenticates a customer account and returns a 7-day token.
func (s *AuthService) LoginCustomer(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.signToken(jwt.MapClaims{
		"kind":   "user",
		"userId": user.ID,
		"email":  user.Email,
	}, customerTokenDuration)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginAdmin checks the configured admin credential pair and returns a 24-hour
// admin token.
func (s *AuthService) LoginAdmin(username, password string) (string, error) {
	if s.adminUsername == "" || username != s.adminUsername || password != s.adminPassword {
		return "", apperrors.Unauthorized("invalid credentials")
	}
	return s.signToken(jwt.MapClaims{
		"kind":     "admin",
		"isAdmin":  true,
		"username": username,
	}, adminTokenDuration)
}

// ParseToken validates a bearer token and returns the typed principal it
// carries. Bad signatures, expiry and unknown kinds are all Unauthorized.
func (s *AuthService) ParseToken(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.Unauthorized("invalid token claims")
	}

	kind, _ := claims["kind"].(string)
	switch kind {
	case "store":
		storeID, _ := claims["storeId"].(string)
		email, _ := claims["email"].(string)
		if storeID == "" {
			return nil, apperrors.Unauthorized("invalid token claims")
		}
		return StoreClaims{StoreID: storeID, Email: email}, nil
	case "user":
		userID, _ := claims["userId"].(string)
		email, _ := claims["email"].(string)
		if userID == "" {
			return nil, apperrors.Unauthorized("invalid token claims")
		}
		return CustomerClaims{UserID: userID, Email: email}, nil
	case "admin":
		if isAdmin, _ := claims["isAdmin"].(bool); !isAdmin {
			return nil, apperrors.Unauthorized("invalid token claims")
		}
		username, _ := claims["username"].(string)
		return AdminClaims{Username: username}, nil
	default:
		return nil, apperrors.Unauthorized("invalid token claims")
	}
}

func (s *AuthService) signToken(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	claims["exp"] = time.Now().Add(ttl).Unix()
	claims["iat"] = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return signed, nil
}
