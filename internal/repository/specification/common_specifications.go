package specification

import "gorm.io/gorm"

type byIDSpecification struct {
	id string
}

func (s *byIDSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.id)
}

func ByID(id string) Specification {
	return &byIDSpecification{id: id}
}

type byUserIDSpecification struct {
	userID string
}

func (s *byUserIDSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.userID)
}

func ByUserID(userID string) Specification {
	return &byUserIDSpecification{userID: userID}
}

type byChatSessionIDSpecification struct {
	sessionID string
}

func (s *byChatSessionIDSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.sessionID)
}

func ByChatSessionID(sessionID string) Specification {
	return &byChatSessionIDSpecification{sessionID: sessionID}
}

type byReadableIDSpecification struct {
	readableID string
}

func (s *byReadableIDSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("readable_id = ?", s.readableID)
}

func ByReadableID(readableID string) Specification {
	return &byReadableIDSpecification{readableID: readableID}
}

type orderBySpecification struct {
	field     string
	direction string
}

func (s *orderBySpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(s.field + " " + s.direction)
}

func OrderBy(field string, direction string) Specification {
	if direction != "desc" {
		direction = "asc"
	}
	return &orderBySpecification{field: field, direction: direction}
}

type limitSpecification struct {
	limit int
}

func (s *limitSpecification) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.limit)
}

func Limit(limit int) Specification {
	return &limitSpecification{limit: limit}
}
