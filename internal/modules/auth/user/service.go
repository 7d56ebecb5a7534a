package user

import (
	"errors"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/translearn/core/internal/models"
	jwtpkg "github.com/translearn/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errUsernameTaken = errors.New("username already taken")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a learner account. Usernames are unique.
func (s *Service) Register(dto RegisterDTO) (*models.UserModel, error) {
	username := strings.TrimSpace(dto.Username)

	var count int64
	if err := s.db.Model(&models.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		name = username
	}

	u := models.UserModel{
		Username: username,
		Name:     name,
		Password: string(hashed),
		Mail:     strings.TrimSpace(dto.Mail),
	}
	if err := s.db.Create(&u).Error; err != nil {
		// The pre-check above races with concurrent registrations; the
		// unique index has the final say.
		var mysqlErr *mysqlDriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, errUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

// Login checks the credentials and issues a JWT. The last-login
// fields are updated best-effort.
func (s *Service) Login(username, password, ip string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, errWrongPassword
	}

	token, err := jwtpkg.Sign(u.ID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	u.LastLoginTime = &now
	u.LastLoginIP = ip
	_ = s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error

	return token, &u, nil
}

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile edits the mutable profile fields.
func (s *Service) UpdateProfile(id string, dto UpdateUserDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(dto.Name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(dto.Mail); v != "" {
		u.Mail = v
	}
	if v := strings.TrimSpace(dto.Introduce); v != "" {
		u.Introduce = v
	}

	if err := s.db.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}
