package service

import (
	"context"
	"errors"
	"log"

	"filmmatch/backend/internal/apperr"
	"filmmatch/backend/internal/models"
	"filmmatch/backend/internal/notification"

	"gorm.io/gorm"
)

// FriendService manages the friend-request lifecycle and the symmetric
// friendship graph. Friendships are stored as two rows per pair; both rows
// are always written and removed in the same transaction.
type FriendService struct {
	db       *gorm.DB
	notifier notification.Notifier
}

func NewFriendService(db *gorm.DB, notifier notification.Notifier) *FriendService {
	return &FriendService{db: db, notifier: notifier}
}

// SendRequest creates a pending friend request from senderID to receiverID.
// Rejected when the receiver is the sender, the two are already friends, or a
// pending request already exists in either direction.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID uint, message string) (*models.FriendRequest, error) {
	if senderID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if senderID == receiverID {
		return nil, apperr.Validation("cannot send a friend request to yourself")
	}

	var receiver models.User
	if err := s.db.WithContext(ctx).First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d", receiverID)
		}
		return nil, err
	}

	var friendCount int64
	if err := s.db.WithContext(ctx).Model(&models.UserFriend{}).
		Where("user_id = ? AND friend_id = ?", senderID, receiverID).
		Count(&friendCount).Error; err != nil {
		return nil, err
	}
	if friendCount > 0 {
		return nil, apperr.Validation("users are already friends")
	}

	var pendingCount int64
	if err := s.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiverID, receiverID, senderID).
		Count(&pendingCount).Error; err != nil {
		return nil, err
	}
	if pendingCount > 0 {
		return nil, apperr.Validation("a pending friend request already exists")
	}

	request := models.FriendRequest{SenderID: senderID, ReceiverID: receiverID, Message: message}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, err
	}

	s.notify(ctx, receiverID, "You have a new friend request")
	return &request, nil
}

// Accept resolves a pending request addressed to receiverID: the request is
// marked accepted and retired, and both friendship rows are created
// atomically. Accepting a request that is missing, already resolved, or
// addressed to someone else fails with not-found.
func (s *FriendService) Accept(ctx context.Context, receiverID, requestID uint) error {
	if receiverID == 0 {
		return apperr.ErrUnauthenticated
	}

	var request models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ?", requestID, receiverID).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("friend request %d", requestID)
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("is_accepted", true).Error; err != nil {
			return err
		}
		pair := []models.UserFriend{
			{UserID: request.SenderID, FriendID: request.ReceiverID},
			{UserID: request.ReceiverID, FriendID: request.SenderID},
		}
		if err := tx.Create(&pair).Error; err != nil {
			return err
		}
		// Retire the request so it no longer shows up as pending.
		return tx.Delete(&request).Error
	})
	if err != nil {
		return err
	}

	s.notify(ctx, request.SenderID, "Your friend request was accepted")
	return nil
}

// Decline retires a pending request without creating any friendship rows.
func (s *FriendService) Decline(ctx context.Context, receiverID, requestID uint) error {
	if receiverID == 0 {
		return apperr.ErrUnauthenticated
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ? AND is_accepted = ?", requestID, receiverID, false).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("friend request %d", requestID)
	}
	return nil
}

// DeleteFriend ends the friendship between userID and friendID, removing both
// symmetric rows in one transaction.
func (s *FriendService) DeleteFriend(ctx context.Context, userID, friendID uint) error {
	if userID == 0 {
		return apperr.ErrUnauthenticated
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
			Delete(&models.UserFriend{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("friendship with user %d", friendID)
		}
		return nil
	})
}

// Friends lists userID's friends, oldest friendship first.
func (s *FriendService) Friends(ctx context.Context, userID uint) ([]UserSummary, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	var rows []models.UserFriend
	err := s.db.WithContext(ctx).Preload("Friend").
		Where("user_id = ?", userID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	friends := make([]UserSummary, 0, len(rows))
	for _, r := range rows {
		if r.Friend.ID == 0 {
			continue // friend's account was deleted
		}
		friends = append(friends, UserSummary{ID: r.Friend.ID, Name: r.Friend.Name})
	}
	return friends, nil
}

// PossibleFriends lists active users the viewer could befriend: everyone
// except the viewer, existing friends, and users with a pending request in
// either direction.
func (s *FriendService) PossibleFriends(ctx context.Context, userID uint) ([]UserSummary, error) {
	if userID == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	excluded := map[uint]struct{}{userID: {}}

	var friendIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.UserFriend{}).
		Where("user_id = ?", userID).Pluck("friend_id", &friendIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range friendIDs {
		excluded[id] = struct{}{}
	}

	var requests []models.FriendRequest
	if err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	for _, r := range requests {
		excluded[r.SenderID] = struct{}{}
		excluded[r.ReceiverID] = struct{}{}
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&users).Error; err != nil {
		return nil, err
	}

	possible := make([]UserSummary, 0, len(users))
	for _, u := range users {
		if _, skip := excluded[u.ID]; skip {
			continue
		}
		possible = append(possible, UserSummary{ID: u.ID, Name: u.Name})
	}
	return possible, nil
}

// Requests lists the pending requests addressed to receiverID, oldest first.
func (s *FriendService) Requests(ctx context.Context, receiverID uint) ([]FriendRequestSummary, error) {
	if receiverID == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	var rows []models.FriendRequest
	err := s.db.WithContext(ctx).Preload("Sender").
		Where("receiver_id = ? AND is_accepted = ?", receiverID, false).
		Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	requests := make([]FriendRequestSummary, 0, len(rows))
	for _, r := range rows {
		summary := FriendRequestSummary{
			ID:        r.ID,
			SenderID:  r.SenderID,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		}
		if r.Sender.ID != 0 {
			summary.SenderName = r.Sender.Name
		}
		requests = append(requests, summary)
	}
	return requests, nil
}

// notify is fire-and-forget: a failed publish is logged, never surfaced.
func (s *FriendService) notify(ctx context.Context, userID uint, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, message); err != nil {
		log.Printf("failed to notify user %d: %v", userID, err)
	}
}
