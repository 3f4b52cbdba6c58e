package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/beetdev/recipe-service/internal/config"
	"github.com/beetdev/recipe-service/internal/models"
)

// Store is the persistence surface the service needs. Every tag and recipe
// call takes the owner's id explicitly; there is no ambient filtering.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	ListTags(ctx context.Context, userID int64) ([]models.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID int64, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID int64) error

	ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID int64) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe, tagNames []string) error
	UpdateRecipe(ctx context.Context, recipe *models.Recipe, tagNames []string, replaceTags bool) error
	DeleteRecipe(ctx context.Context, userID, recipeID int64) error
}

// Mailer sends account mail. A nil Mailer disables mail entirely.
type Mailer interface {
	SendWelcome(to, name string) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	mailer Mailer
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mailer Mailer) *Service {
	return &Service{store: store, log: log, config: cfg, mailer: mailer}
}
