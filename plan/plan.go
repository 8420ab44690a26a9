// Package plan implements the shared per-guild event plan: one plan per
// guild with a title, a capacity, an optional scheduled time and a roster,
// kept in sync with a single rendered message.
package plan

import (
	"time"

	"github.com/chis-dev/chisbot/common"
)

var logger = common.GetPluginLogger(&Plugin{})

const (
	// DefaultTitle is used when no title is given, or the given one is blank
	// or over MaxTitleLength.
	DefaultTitle = ":notebook_with_decorative_cover: Game Plan"

	DefaultSpots   = 10
	MaxSpots       = 20
	MaxTitleLength = 256

	// ProtectionWindow is how long after a plan's message was posted a new
	// /plan has to be confirmed before it overwrites the old one.
	ProtectionWindow = time.Hour
)

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "Plan",
		SysName:  "plan",
		Category: common.PluginCategoryMisc,
	}
}

func RegisterPlugin() {
	err := common.GORM.AutoMigrate(&Plan{}, &UserTzConfig{}).Error
	if err != nil {
		panic(err)
	}

	common.RegisterPlugin(&Plugin{})
}

// NormalizeTitle replaces a blank or over-length title with the default label.
func NormalizeTitle(title string) string {
	if title == "" || len(title) > MaxTitleLength {
		return DefaultTitle
	}
	return title
}

// NormalizeSpots clamps the capacity into [1, MaxSpots], defaulting when
// unset or non-positive.
func NormalizeSpots(spots int) int {
	if spots <= 0 {
		return DefaultSpots
	}
	if spots > MaxSpots {
		return MaxSpots
	}
	return spots
}
