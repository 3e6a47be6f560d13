package models

import "gorm.io/gorm"

// BlacklistToken denylists a JWT invalidated by logout before its natural
// expiry. Rows older than the 24h token lifetime are removed by the
// background sweeper; the handlers only ever insert and look up.
type BlacklistToken struct {
	gorm.Model
	Token string `json:"token" gorm:"uniqueIndex;not null"`
}
