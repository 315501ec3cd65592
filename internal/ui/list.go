package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/likeshift/internal/models"
)

var _ list.Item = videoItem{}

// videoItem wraps [models.VideoRecord] to implement [list.Item].
type videoItem struct {
	video models.VideoRecord
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string { return i.video.URL }
