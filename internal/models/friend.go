package models

import "gorm.io/gorm"

// FriendRequest represents a pending friend request from Sender to Receiver.
// Accepting or declining soft-deletes the row so it no longer shows up as
// pending; accepted requests keep IsAccepted for history.
type FriendRequest struct {
	gorm.Model
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Message    string `gorm:"size:512"`
	IsAccepted bool   `gorm:"not null;default:false"`

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}

// UserFriend is one direction of a friendship. Friendships are stored as a
// pair of rows, (A,B) and (B,A), so either side can be queried directly.
// Both rows are created and removed together.
type UserFriend struct {
	gorm.Model
	UserID   uint `gorm:"not null;index:idx_user_friend"`
	FriendID uint `gorm:"not null;index:idx_user_friend"`

	User   User `gorm:"foreignKey:UserID"`
	Friend User `gorm:"foreignKey:FriendID"`
}
