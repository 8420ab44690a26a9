package common

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// GORMLogger forwards gorm's internal logging to logrus.
type GORMLogger struct{}

func (g *GORMLogger) Print(v ...interface{}) {
	strs := make([]string, len(v))
	for i, elem := range v {
		if s, ok := elem.(string); ok {
			strs[i] = s
		}
	}

	logrus.WithField("stck", "gorm").Error(strings.Join(strs, " "))
}
