package service

import (
	"Flicker/internal/api/config"
	"Flicker/internal/api/dto"
	"Flicker/internal/model"
	"Flicker/internal/pkg/consts"
	"Flicker/internal/pkg/minio"
	"Flicker/internal/pkg/util"
	"Flicker/internal/repository"
	"context"
	"io"
	"math/rand"
	"path"
	"strings"
	"time"

	log "log/slog"

	"github.com/google/uuid"
)

const (
	defaultCooldownMinSeconds = 300
	defaultCooldownMaxSeconds = 7200
	defaultTimezone           = "Asia/Manila"
)

// ImageUpload 待上传的帖子图片
type ImageUpload struct {
	Name   string
	Size   int64
	Reader io.ReadSeeker
}

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO, images []*ImageUpload) (*dto.PostCreatedDTO, error)
	UpdatePost(ctx context.Context, userID uint64, req *dto.PostUpdateDTO) error
	DeletePost(ctx context.Context, userID, postID uint64) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	cooldownRepo repository.CooldownRepo
	blobStore    minio.BlobStore
}

func NewPostService(postRepo repository.PostRepo, cooldownRepo repository.CooldownRepo, blobStore minio.BlobStore) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		cooldownRepo: cooldownRepo,
		blobStore:    blobStore,
	}
}

// AppLocation 业务时区，有效期与冷却窗口都按它计算
func AppLocation() *time.Location {
	tz := defaultTimezone
	if config.Cfg != nil && config.Cfg.App.Timezone != "" {
		tz = config.Cfg.App.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

func cooldownRange() (int, int) {
	minSec, maxSec := defaultCooldownMinSeconds, defaultCooldownMaxSeconds
	if config.Cfg != nil && config.Cfg.App.CooldownMinSeconds > 0 && config.Cfg.App.CooldownMaxSeconds >= config.Cfg.App.CooldownMinSeconds {
		minSec = config.Cfg.App.CooldownMinSeconds
		maxSec = config.Cfg.App.CooldownMaxSeconds
	}
	return minSec, maxSec
}

// CreatePost 发帖：校验、解析有效期、冷却检查、上传图片、落库、刷新冷却
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO, images []*ImageUpload) (*dto.PostCreatedDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrMissingFields
	}

	duration, err := util.ParseExpiryDuration(req.ExpiryDuration)
	if err != nil {
		return nil, ErrInvalidDuration
	}

	cooldown, err := s.cooldownRepo.GetCooldown(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(AppLocation())
	if cooldown != nil && now.Before(cooldown.NextAllowedAt) {
		return nil, ErrCooldownActive
	}

	postImages, uploaded, err := s.uploadImages(ctx, images)
	if err != nil {
		s.cleanupBlobs(uploaded)
		return nil, err
	}

	post := &model.Post{
		UserID:    userID,
		Content:   req.Content,
		ExpiresAt: now.Add(duration),
	}
	if err = s.postRepo.CreatePost(ctx, post, postImages); err != nil {
		s.cleanupBlobs(uploaded)
		return nil, err
	}

	minSec, maxSec := cooldownRange()
	next := now.Add(time.Duration(minSec+rand.Intn(maxSec-minSec+1)) * time.Second)
	if err = s.cooldownRepo.UpsertCooldown(ctx, &model.PostCooldown{UserID: userID, NextAllowedAt: next}); err != nil {
		log.ErrorContext(ctx, "upsert post cooldown failed", "userID", userID, "err", err)
	}

	return &dto.PostCreatedDTO{PostID: post.ID, ImageNames: uploaded}, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, req *dto.PostUpdateDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrMissingFields
	}

	duration, err := util.ParseExpiryDuration(req.ExpiryDuration)
	if err != nil {
		return ErrInvalidDuration
	}

	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}

	now := time.Now().In(AppLocation())
	return s.postRepo.UpdatePost(ctx, req.PostID, req.Content, now.Add(duration))
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}

	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	if len(post.Images) > 0 {
		go func(images []model.PostImage) {
			bgCtx := context.Background()
			for _, img := range images {
				if err := s.blobStore.Remove(bgCtx, img.ImageURL); err != nil {
					log.Error("post image cleanup failed", "object", img.ImageURL, "err", err)
				}
			}
		}(post.Images)
	}

	return nil
}

// PurgeExpired 删除所有已过期帖子及其图片记录
func (s *postServiceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	return s.postRepo.DeleteExpired(ctx, time.Now().In(AppLocation()))
}

func (s *postServiceImpl) uploadImages(ctx context.Context, images []*ImageUpload) ([]*model.PostImage, []string, error) {
	postImages := make([]*model.PostImage, 0, len(images))
	uploaded := make([]string, 0, len(images))

	for _, img := range images {
		contentType, err := util.GetSafeContentType(img.Reader)
		if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
			return nil, uploaded, ErrFileNotSupported
		}

		width, height, err := util.GetImageDimensions(img.Reader)
		if err != nil {
			return nil, uploaded, ErrFileNotSupported
		}

		objectName := "posts/" + uuid.NewString() + path.Ext(img.Name)
		url, err := s.blobStore.Put(ctx, objectName, img.Reader, img.Size, contentType)
		if err != nil {
			log.ErrorContext(ctx, "post image upload failed", "object", objectName, "err", err)
			return nil, uploaded, ErrImageStore
		}
		uploaded = append(uploaded, url)

		postImages = append(postImages, &model.PostImage{
			ImageURL: url,
			Width:    width,
			Height:   height,
		})
	}

	return postImages, uploaded, nil
}

func (s *postServiceImpl) cleanupBlobs(objects []string) {
	if len(objects) == 0 {
		return
	}
	go func() {
		bgCtx := context.Background()
		for _, obj := range objects {
			_ = s.blobStore.Remove(bgCtx, obj)
		}
	}()
}
