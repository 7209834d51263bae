package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pazar/internal/apperrors"
	"pazar/internal/models"
	"pazar/internal/repositories"
	"pazar/internal/services"
)

func TestCommentService_CreateComment_Validation(t *testing.T) {
	svc := services.NewCommentService(repositories.NewMockCommentRepository())

	_, err := svc.CreateComment("", "store-1", "Mehmet", 4, "guzel urun")
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	_, err = svc.CreateComment("prod-1", "store-1", "Mehmet", 0, "guzel urun")
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	_, err = svc.CreateComment("prod-1", "store-1", "Mehmet", 6, "guzel urun")
	assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))

	// No existence check: the referenced product never has to exist.
	comment, err := svc.CreateComment("prod-ghost", "store-ghost", "Mehmet", 5, "hala guzel")
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
}

func TestCommentService_ListComments_NewestFirst(t *testing.T) {
	repo := repositories.NewMockCommentRepository()
	svc := services.NewCommentService(repo)

	assert.NoError(t, repo.Create(&models.Comment{
		ProductID: "prod-1", StoreID: "store-1", UserName: "Ali", Stars: 3,
		Text: "eski yorum", CreatedAt: time.Now().Add(-time.Hour),
	}))
	assert.NoError(t, repo.Create(&models.Comment{
		ProductID: "prod-1", StoreID: "store-1", UserName: "Ayse", Stars: 5,
		Text: "yeni yorum", CreatedAt: time.Now(),
	}))
	assert.NoError(t, repo.Create(&models.Comment{
		ProductID: "prod-2", StoreID: "store-1", UserName: "Can", Stars: 4,
		Text: "baska urun", CreatedAt: time.Now(),
	}))

	comments, err := svc.ListComments("prod-1")
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "yeni yorum", comments[0].Text)
	assert.Equal(t, "eski yorum", comments[1].Text)
}
