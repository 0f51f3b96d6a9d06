package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrNotGroupMember = errors.New("not a member of this group")
)

// FeedService handles feed post creation
type FeedService struct {
	postRepo      *repository.PostRepository
	groupRepo     *repository.GroupRepository
	doctorRepo    *repository.DoctorRepository
	notifications *NotificationService
}

func NewFeedService(
	postRepo *repository.PostRepository,
	groupRepo *repository.GroupRepository,
	doctorRepo *repository.DoctorRepository,
	notifications *NotificationService,
) *FeedService {
	return &FeedService{
		postRepo:      postRepo,
		groupRepo:     groupRepo,
		doctorRepo:    doctorRepo,
		notifications: notifications,
	}
}

// CreatePost publishes a feed post and notifies all verified doctors.
// Posting into a group requires membership.
func (s *FeedService) CreatePost(ctx context.Context, doctorID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	if req.GroupID != nil {
		if _, err := s.groupRepo.FindByID(*req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		isMember, err := s.groupRepo.IsMember(*req.GroupID, doctorID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotGroupMember
		}
	}

	post := &model.Post{
		DoctorID: doctorID,
		GroupID:  req.GroupID,
		Content:  req.Content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	actorName := "A colleague"
	if actor, err := s.doctorRepo.FindByID(doctorID); err == nil {
		actorName = "Dr. " + actor.Name
	}

	event := Event{
		Type:      model.NotificationNewPost,
		ActorID:   doctorID,
		SubjectID: &post.ID,
		Title:     "New post",
		Content:   fmt.Sprintf("%s shared a new post", actorName),
	}
	if err := s.notifications.Dispatch(ctx, event); err != nil {
		log.Printf("⚠️ Failed to dispatch new-post notifications: %v", err)
	}

	return post, nil
}
