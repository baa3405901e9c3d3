package entity

// Base carries the columns every record table has.
type Base struct {
	ID        string `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}

func (b *Base) GetID() string {
	return b.ID
}

func (b *Base) SetID(id string) {
	b.ID = id
}

func (b *Base) Stamp(nowMillis int64) {
	if b.CreatedAt == 0 {
		b.CreatedAt = nowMillis
	}
	b.UpdatedAt = nowMillis
}

func (b *Base) Created() int64 {
	return b.CreatedAt
}

func (b *Base) SetCreated(millis int64) {
	b.CreatedAt = millis
}

func fullName(first, last string) string {
	return first + " " + last
}
