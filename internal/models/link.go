package models

import "time"

// Link модель короткой ссылки. Ключом является сам код.
type Link struct {
	Code        string     `gorm:"primaryKey;size:8"                   json:"code"`
	URL         string     `gorm:"not null"                            json:"url"`
	Clicks      uint64     `gorm:"not null;default:0"                  json:"clicks"`
	LastClicked *time.Time `json:"lastClicked"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_links_created_at" json:"createdAt"`
}

// TableName имя таблицы для GORM.
func (Link) TableName() string {
	return "links"
}

// UTC приводит временные метки к UTC. Драйверы возвращают время в разных зонах,
// наружу отдаем всегда UTC.
func (l *Link) UTC() *Link {
	l.CreatedAt = l.CreatedAt.UTC()
	if l.LastClicked != nil {
		t := l.LastClicked.UTC()
		l.LastClicked = &t
	}
	return l
}
