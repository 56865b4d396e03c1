package wire

import (
	"Flicker/internal/api"
	"Flicker/internal/api/config"
	"Flicker/internal/api/handler"
	"Flicker/internal/job"
	"Flicker/internal/pkg/cron"
	"Flicker/internal/pkg/kafka"
	"Flicker/internal/pkg/minio"
	"Flicker/internal/pkg/mongo"
	"Flicker/internal/repository"
	"Flicker/internal/service"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronManager  *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepo(db)
	actionRepo := repository.NewPostActionRepo(db)
	cooldownRepo := repository.NewCooldownRepo(db)
	notificationRepo := mongo.NewNotificationRepo(mongoDB)

	blobStore := minio.NewBlobStore()

	notificationService := service.NewNotificationService(notificationRepo)
	postService := service.NewPostService(postRepo, cooldownRepo, blobStore)
	feedService := service.NewFeedService(postRepo, userFollowRepo, actionRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, actionRepo, notificationService)
	actionService := service.NewPostActionService(actionRepo, postRepo, commentRepo, notificationService)
	userService := service.NewUserService(userRepo)

	handlers := &api.HandlersGroup{
		PostOpsHandler: handler.NewPostOpsHandler(postService, feedService, commentService, actionService),
		UserOpsHandler: handler.NewUserOpsHandler(userService, notificationService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewPostPurgeJob(postService),
		job.NewCountSyncJob(actionRepo),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronManager:  cronMgr,
	}, nil
}
