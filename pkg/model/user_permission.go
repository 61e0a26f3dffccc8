package model

import "time"

// UserPermission links a user to a permission fact. The complete link
// set for a user is the persisted encoding of that user's matrix;
// absence of a link is the storage-level encoding of LevelNone.
type UserPermission struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	PermissionID string    `gorm:"column:permission_id;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
