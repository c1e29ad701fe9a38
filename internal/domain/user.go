package domain

import "time"

type User struct {
	ID        int64
	UserUUID  string
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
