package domain

import "time"

// Subscription links a subscriber to an author. The pair is unique at
// the store level; subscriber == author is rejected at write time.
type Subscription struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	SubscriberID int64     `gorm:"column:subscriber_id;uniqueIndex:uq_subscriber_author;not null" json:"subscriber_id"`
	AuthorID     int64     `gorm:"column:author_id;uniqueIndex:uq_subscriber_author;not null" json:"author_id"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
