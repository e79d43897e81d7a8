package repositories_test

import (
	"errors"
	"testing"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRepos(t *testing.T) map[string]repositories.ProductRepository {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	return map[string]repositories.ProductRepository{
		"gorm":   repositories.NewGORMProductRepository(db),
		"memory": repositories.NewMockProductRepository(),
	}
}

func contactRepos(t *testing.T) map[string]repositories.ContactRepository {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	return map[string]repositories.ContactRepository{
		"gorm":   repositories.NewGORMContactRepository(db),
		"memory": repositories.NewMockContactRepository(),
	}
}

func userRepos(t *testing.T) map[string]repositories.UserRepository {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	return map[string]repositories.UserRepository{
		"gorm":   repositories.NewGORMUserRepository(db),
		"memory": repositories.NewMockUserRepository(),
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	for name, repo := range productRepos(t) {
		t.Run(name, func(t *testing.T) {
			products, err := repo.GetAll()
			require.NoError(t, err)
			assert.Empty(t, products)
			assert.NotNil(t, products)

			widget := &models.Product{Slug: "abc", Name: "Widget", Price: 100}
			require.NoError(t, repo.Create(widget))
			assert.NotZero(t, widget.ID)

			gadget := &models.Product{Slug: "gadget", Name: "Gadget", Price: 5}
			require.NoError(t, repo.Create(gadget))

			fetched, err := repo.GetBySlug("abc")
			require.NoError(t, err)
			assert.Equal(t, *widget, *fetched)

			fetched.Price = 0
			fetched.Name = "Widget v2"
			require.NoError(t, repo.Update(fetched))
			updated, err := repo.GetBySlug("abc")
			require.NoError(t, err)
			assert.Equal(t, "Widget v2", updated.Name)
			assert.Equal(t, 0, updated.Price)

			products, err = repo.GetAll()
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, "abc", products[0].Slug)
			assert.Equal(t, "gadget", products[1].Slug)

			require.NoError(t, repo.Delete("abc"))
			_, err = repo.GetBySlug("abc")
			assert.True(t, errors.Is(err, apperror.ErrNotFound))
		})
	}
}

func TestProductRepository_DuplicateSlug(t *testing.T) {
	for name, repo := range productRepos(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Create(&models.Product{Slug: "abc", Name: "Widget", Price: 100}))

			err := repo.Create(&models.Product{Slug: "abc", Name: "Impostor", Price: 1})
			assert.True(t, errors.Is(err, apperror.ErrConflict))

			stored, err := repo.GetBySlug("abc")
			require.NoError(t, err)
			assert.Equal(t, "Widget", stored.Name)
		})
	}
}

func TestProductRepository_MissingRecords(t *testing.T) {
	for name, repo := range productRepos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetBySlug("nope")
			assert.True(t, errors.Is(err, apperror.ErrNotFound))

			err = repo.Update(&models.Product{ID: 42, Slug: "nope", Name: "x", Price: 1})
			assert.True(t, errors.Is(err, apperror.ErrNotFound))

			err = repo.Delete("nope")
			assert.True(t, errors.Is(err, apperror.ErrNotFound))
		})
	}
}

func TestContactRepository_CRUD(t *testing.T) {
	for name, repo := range contactRepos(t) {
		t.Run(name, func(t *testing.T) {
			ada := &models.Contact{FName: "Ada", LName: "Lovelace"}
			require.NoError(t, repo.Create(ada))
			assert.NotZero(t, ada.ID)

			fetched, err := repo.GetByID(ada.ID)
			require.NoError(t, err)
			assert.Equal(t, *ada, *fetched)

			fetched.LName = "King"
			require.NoError(t, repo.Update(fetched))
			updated, err := repo.GetByID(ada.ID)
			require.NoError(t, err)
			assert.Equal(t, "King", updated.LName)

			contacts, err := repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, contacts, 1)

			require.NoError(t, repo.Delete(ada.ID))
			_, err = repo.GetByID(ada.ID)
			assert.True(t, errors.Is(err, apperror.ErrNotFound))
			assert.True(t, errors.Is(repo.Delete(ada.ID), apperror.ErrNotFound))
			assert.True(t, errors.Is(repo.Update(&models.Contact{ID: 99, FName: "a", LName: "b"}), apperror.ErrNotFound))
		})
	}
}

func TestUserRepository(t *testing.T) {
	for name, repo := range userRepos(t) {
		t.Run(name, func(t *testing.T) {
			user := &models.User{Username: "alice", Password: "hash", IsActive: true}
			require.NoError(t, repo.Create(user))
			assert.NotEmpty(t, user.ID)

			byName, err := repo.GetByUsername("alice")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byName.ID)

			byID, err := repo.GetByID(user.ID)
			require.NoError(t, err)
			assert.Equal(t, "alice", byID.Username)
			assert.True(t, byID.IsActive)

			err = repo.Create(&models.User{Username: "alice", Password: "other"})
			assert.True(t, errors.Is(err, apperror.ErrConflict))

			_, err = repo.GetByUsername("bob")
			assert.True(t, errors.Is(err, apperror.ErrNotFound))
			_, err = repo.GetByID("missing")
			assert.True(t, errors.Is(err, apperror.ErrNotFound))
		})
	}
}
