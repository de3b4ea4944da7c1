package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"smart-blog-be/internal/entity"
	"smart-blog-be/internal/model"
	"smart-blog-be/internal/repository/specification"
	"smart-blog-be/internal/repository/unitofwork"
	"smart-blog-be/pkg/database"
	"smart-blog-be/pkg/lexical"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	if os.Getenv("DB_DRIVER") != database.DriverPostgres {
		t.Skip("Skipping integration test: DB_DRIVER is not postgres")
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Post Round Trip In Transaction", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		post := &entity.Post{
			Id:          uuid.New(),
			Title:       "Integration post",
			ContentJSON: lexical.EmptyDocument().Bytes(),
			ContentHTML: "<p></p>",
			Status:      entity.PostStatusDraft,
		}
		require.NoError(t, uow.PostRepository().Create(ctx, post))

		found, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: post.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.JSONEq(t, string(post.ContentJSON), string(found.ContentJSON))

		deleted, err := uow.PostRepository().Delete(ctx, post.Id)
		require.NoError(t, err)
		assert.True(t, deleted)

		require.NoError(t, uow.Commit())
	})
}
