package plan

import (
	"emperror.dev/errors"
	"github.com/jinzhu/gorm"
)

// PlanStore is the persistence collaborator for plans. Absence is reported
// as (nil, nil), never as an error.
type PlanStore interface {
	Find(guildID string) (*Plan, error)
	Create(plan *Plan) error
	Save(plan *Plan) error
	Delete(guildID string) error
}

// UserTzStore persists per-user timezone preferences. Get returns "" when
// the user has none set.
type UserTzStore interface {
	SaveTz(userID, timezone string) error
	GetTz(userID string) (string, error)
}

// GORMStore implements PlanStore and UserTzStore on a postgres connection.
type GORMStore struct {
	DB *gorm.DB
}

func (s *GORMStore) Find(guildID string) (*Plan, error) {
	var p Plan
	err := s.DB.Where("id = ?", guildID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStackIf(err)
	}
	return &p, nil
}

func (s *GORMStore) Create(plan *Plan) error {
	return errors.WithStackIf(s.DB.Create(plan).Error)
}

func (s *GORMStore) Save(plan *Plan) error {
	return errors.WithStackIf(s.DB.Save(plan).Error)
}

func (s *GORMStore) Delete(guildID string) error {
	return errors.WithStackIf(s.DB.Where("id = ?", guildID).Delete(&Plan{}).Error)
}

func (s *GORMStore) SaveTz(userID, timezone string) error {
	var conf UserTzConfig
	err := s.DB.Where("user_id = ?", userID).First(&conf).Error
	if err == gorm.ErrRecordNotFound {
		return errors.WithStackIf(s.DB.Create(&UserTzConfig{UserID: userID, Timezone: timezone}).Error)
	}
	if err != nil {
		return errors.WithStackIf(err)
	}

	conf.Timezone = timezone
	return errors.WithStackIf(s.DB.Save(&conf).Error)
}

func (s *GORMStore) GetTz(userID string) (string, error) {
	var conf UserTzConfig
	err := s.DB.Where("user_id = ?", userID).First(&conf).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", errors.WithStackIf(err)
	}
	return conf.Timezone, nil
}
