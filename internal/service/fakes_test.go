package service

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/model"
	"Flicker/internal/pkg/minio"
	"Flicker/internal/pkg/mongo"
	"Flicker/internal/repository"
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type fakePostRepo struct {
	nextID uint64
	posts  map[uint64]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint64]*model.Post)}
}

func (f *fakePostRepo) add(post *model.Post) *model.Post {
	f.nextID++
	post.ID = f.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	f.posts[post.ID] = post
	return post
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post, images []*model.PostImage) error {
	f.add(post)
	for _, img := range images {
		img.PostID = post.ID
		post.Images = append(post.Images, *img)
	}
	return nil
}

func (f *fakePostRepo) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) GetPostByIds(_ context.Context, ids []uint64) ([]*model.Post, error) {
	var res []*model.Post
	for _, id := range ids {
		if post, ok := f.posts[id]; ok {
			res = append(res, post)
		}
	}
	return res, nil
}

func (f *fakePostRepo) GetFeedPosts(_ context.Context, authorIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, error) {
	authors := make(map[uint64]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}
	var res []*model.Post
	for _, post := range f.posts {
		if _, ok := authors[post.UserID]; !ok {
			continue
		}
		if !post.ExpiresAt.After(now) {
			continue
		}
		res = append(res, post)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if offset >= len(res) {
		return nil, nil
	}
	res = res[offset:]
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id uint64, content string, expiresAt time.Time) error {
	post, ok := f.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.Content = content
	post.ExpiresAt = expiresAt
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint64) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	for id, post := range f.posts {
		if !post.ExpiresAt.After(now) {
			delete(f.posts, id)
			purged++
		}
	}
	return purged, nil
}

type fakeCooldownRepo struct {
	cooldowns map[uint64]*model.PostCooldown
}

func newFakeCooldownRepo() *fakeCooldownRepo {
	return &fakeCooldownRepo{cooldowns: make(map[uint64]*model.PostCooldown)}
}

func (f *fakeCooldownRepo) GetCooldown(_ context.Context, userID uint64) (*model.PostCooldown, error) {
	return f.cooldowns[userID], nil
}

func (f *fakeCooldownRepo) UpsertCooldown(_ context.Context, cooldown *model.PostCooldown) error {
	f.cooldowns[cooldown.UserID] = cooldown
	return nil
}

type reactionKey struct {
	userID   uint64
	targetID uint64
}

type fakeActionRepo struct {
	likes        map[reactionKey]struct{}
	commentLikes map[reactionKey]struct{}
	replyLikes   map[reactionKey]struct{}
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{
		likes:        make(map[reactionKey]struct{}),
		commentLikes: make(map[reactionKey]struct{}),
		replyLikes:   make(map[reactionKey]struct{}),
	}
}

func insertReaction(set map[reactionKey]struct{}, userID, targetID uint64) error {
	key := reactionKey{userID, targetID}
	if _, ok := set[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	set[key] = struct{}{}
	return nil
}

func deleteReaction(set map[reactionKey]struct{}, userID, targetID uint64) (int64, error) {
	key := reactionKey{userID, targetID}
	if _, ok := set[key]; !ok {
		return 0, nil
	}
	delete(set, key)
	return 1, nil
}

func likedIDs(set map[reactionKey]struct{}, userID uint64, targetIDs []uint64) ([]uint64, error) {
	var res []uint64
	for _, id := range targetIDs {
		if _, ok := set[reactionKey{userID, id}]; ok {
			res = append(res, id)
		}
	}
	return res, nil
}

func countReactions(set map[reactionKey]struct{}, targetID uint64) (int64, error) {
	var count int64
	for key := range set {
		if key.targetID == targetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeActionRepo) CreateLike(_ context.Context, like *model.Like) error {
	return insertReaction(f.likes, like.UserID, like.PostID)
}

func (f *fakeActionRepo) DeleteLike(_ context.Context, userID, postID uint64) (int64, error) {
	return deleteReaction(f.likes, userID, postID)
}

func (f *fakeActionRepo) CheckLikeExists(_ context.Context, userID, postID uint64) (bool, error) {
	_, ok := f.likes[reactionKey{userID, postID}]
	return ok, nil
}

func (f *fakeActionRepo) GetLikedPostIDs(_ context.Context, userID uint64, postIDs []uint64) ([]uint64, error) {
	return likedIDs(f.likes, userID, postIDs)
}

func (f *fakeActionRepo) GetLikeCountByPostID(_ context.Context, postID uint64) (int64, error) {
	return countReactions(f.likes, postID)
}

func (f *fakeActionRepo) CreateCommentLike(_ context.Context, cl *model.CommentLike) error {
	return insertReaction(f.commentLikes, cl.UserID, cl.CommentID)
}

func (f *fakeActionRepo) DeleteCommentLike(_ context.Context, userID, commentID uint64) (int64, error) {
	return deleteReaction(f.commentLikes, userID, commentID)
}

func (f *fakeActionRepo) GetLikedCommentIDs(_ context.Context, userID uint64, commentIDs []uint64) ([]uint64, error) {
	return likedIDs(f.commentLikes, userID, commentIDs)
}

func (f *fakeActionRepo) GetCommentLikeCount(_ context.Context, commentID uint64) (int64, error) {
	return countReactions(f.commentLikes, commentID)
}

func (f *fakeActionRepo) CreateReplyLike(_ context.Context, rl *model.ReplyLike) error {
	return insertReaction(f.replyLikes, rl.UserID, rl.ReplyID)
}

func (f *fakeActionRepo) DeleteReplyLike(_ context.Context, userID, replyID uint64) (int64, error) {
	return deleteReaction(f.replyLikes, userID, replyID)
}

func (f *fakeActionRepo) GetLikedReplyIDs(_ context.Context, userID uint64, replyIDs []uint64) ([]uint64, error) {
	return likedIDs(f.replyLikes, userID, replyIDs)
}

func (f *fakeActionRepo) GetReplyLikeCount(_ context.Context, replyID uint64) (int64, error) {
	return countReactions(f.replyLikes, replyID)
}

type fakeCommentRepo struct {
	nextID   uint64
	comments map[uint64]*model.Comment
	replies  map[uint64]*model.Reply
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[uint64]*model.Comment),
		replies:  make(map[uint64]*model.Reply),
	}
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	return f.comments[commentID], nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID uint64) ([]*model.Comment, error) {
	var res []*model.Comment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			res = append(res, comment)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

func (f *fakeCommentRepo) GetCommentCountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for _, comment := range f.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, commentID uint64) error {
	delete(f.comments, commentID)
	for id, reply := range f.replies {
		if reply.MainID == commentID {
			delete(f.replies, id)
		}
	}
	return nil
}

func (f *fakeCommentRepo) CreateReply(_ context.Context, reply *model.Reply) error {
	f.nextID++
	reply.ID = f.nextID
	f.replies[reply.ID] = reply
	return nil
}

func (f *fakeCommentRepo) GetReplyByID(_ context.Context, replyID uint64) (*model.Reply, error) {
	return f.replies[replyID], nil
}

func (f *fakeCommentRepo) GetRepliesByPostID(_ context.Context, postID uint64) ([]*model.Reply, error) {
	var res []*model.Reply
	for _, reply := range f.replies {
		if reply.PostID == postID {
			res = append(res, reply)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (f *fakeCommentRepo) GetReplyCountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for _, reply := range f.replies {
		if reply.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) DeleteReply(_ context.Context, replyID uint64) error {
	delete(f.replies, replyID)
	return nil
}

type fakeFollowRepo struct {
	following map[uint64][]uint64
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{following: make(map[uint64][]uint64)}
}

func (f *fakeFollowRepo) GetFollowingIDs(_ context.Context, followerID uint64) ([]uint64, error) {
	return f.following[followerID], nil
}

func (f *fakeFollowRepo) CheckFollowExists(_ context.Context, followerID, followingID uint64) (bool, error) {
	for _, id := range f.following[followerID] {
		if id == followingID {
			return true, nil
		}
	}
	return false, nil
}

type dispatched struct {
	typ        int8
	senderID   uint64
	receiverID uint64
	postID     uint64
	message    string
}

type fakeNotificationService struct {
	dispatchErr error
	records     []dispatched
}

func (f *fakeNotificationService) Dispatch(_ context.Context, typ int8, senderID, receiverID, postID uint64, message string) error {
	if senderID == receiverID {
		return nil
	}
	if f.dispatchErr != nil {
		return f.dispatchErr
	}
	f.records = append(f.records, dispatched{typ, senderID, receiverID, postID, message})
	return nil
}

func (f *fakeNotificationService) GetNotificationList(context.Context, uint64, int, int) (*dto.NotificationListDTO, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationService) GetUnreadCount(context.Context, uint64) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationService) MarkRead(context.Context, uint64, string) error {
	return nil
}

func (f *fakeNotificationService) MarkAllRead(context.Context, uint64) error {
	return nil
}

type fakeBlobStore struct {
	failPut bool
	puts    []string
	removed []string
}

func (f *fakeBlobStore) Put(_ context.Context, objectName string, _ io.Reader, _ int64, _ string) (string, error) {
	if f.failPut {
		return "", errors.New("minio unavailable")
	}
	f.puts = append(f.puts, objectName)
	return objectName, nil
}

func (f *fakeBlobStore) Remove(_ context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return nil
}

func (f *fakeBlobStore) PublicURL(objectName string) string {
	return objectName
}

type fakeNotificationRepo struct {
	created []*mongo.NotificationModel
	read    map[string]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{read: make(map[string]bool)}
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, msg *mongo.NotificationModel) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	f.created = append(f.created, msg)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationList(_ context.Context, userID uint64, limit, offset int64) ([]*mongo.NotificationModel, error) {
	var res []*mongo.NotificationModel
	for _, msg := range f.created {
		if msg.ReceiverID == userID {
			res = append(res, msg)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if offset >= int64(len(res)) {
		return nil, nil
	}
	res = res[offset:]
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, userID uint64, msgID string) error {
	for _, msg := range f.created {
		if msg.ReceiverID == userID && msg.ID.Hex() == msgID {
			msg.IsRead = true
			return nil
		}
	}
	return mongoDB.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID uint64) error {
	for _, msg := range f.created {
		if msg.ReceiverID == userID {
			msg.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	var count int64
	for _, msg := range f.created {
		if msg.ReceiverID == userID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

var (
	_ repository.PostRepo       = (*fakePostRepo)(nil)
	_ repository.CooldownRepo   = (*fakeCooldownRepo)(nil)
	_ repository.PostActionRepo = (*fakeActionRepo)(nil)
	_ repository.CommentRepo    = (*fakeCommentRepo)(nil)
	_ repository.UserFollowRepo = (*fakeFollowRepo)(nil)
	_ NotificationService       = (*fakeNotificationService)(nil)
	_ minio.BlobStore           = (*fakeBlobStore)(nil)
	_ mongo.NotificationRepo    = (*fakeNotificationRepo)(nil)
)
