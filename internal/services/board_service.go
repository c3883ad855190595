package services

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"futsald/internal/models"
	"futsald/internal/store"
	"futsald/internal/structures"
)

// MessageView is a message prepared for one viewer: the raw LikedBy set is
// collapsed into LikedByMe for the requesting device.
type MessageView struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Author    string     `json:"author"`
	AuthorID  string     `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Likes     int        `json:"likes"`
	LikedByMe bool       `json:"likedByMe"`
	Pinned    bool       `json:"pinned"`
}

// DayBucket groups a day's messages. The active day's bucket is marked
// expanded so clients open it by default.
type DayBucket struct {
	Day      string        `json:"day"`
	Expanded bool          `json:"expanded"`
	Messages []MessageView `json:"messages"`
}

// AnnouncementView resolves a pin against the live message: while the source
// message exists its current text wins over the denormalized copy.
type AnnouncementView struct {
	MessageID string    `json:"messageId"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	PinnedAt  time.Time `json:"pinnedAt"`
}

type BoardServiceInterface interface {
	Post(deviceID, text string, now time.Time) (*models.Message, error)
	Edit(deviceID, messageID, text string, now time.Time) (*models.Message, error)
	Delete(deviceID, messageID string) error
	ToggleLike(deviceID, messageID string) (liked bool, likes int, err error)
	List(deviceID string, now time.Time) []DayBucket
	Expire(now time.Time) int
	Pin(deviceID, messageID string, now time.Time) error
	Unpin(messageID string) error
	IsPinned(messageID string) bool
	Pins() []AnnouncementView
	MessageCount() int
	PinnedCount() int
}

type BoardService struct {
	store *store.Store
	conf  *structures.Config
}

func NewBoardService(st *store.Store, conf *structures.Config) BoardServiceInterface {
	return &BoardService{store: st, conf: conf}
}

func (bs *BoardService) Post(deviceID, text string, now time.Time) (*models.Message, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	text, err := bs.validateText(text)
	if err != nil {
		return nil, err
	}
	mapping, ok := bs.store.Identities.Get(deviceID)
	if !ok {
		return nil, ErrNotRegistered
	}

	msg := &models.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    mapping.Nickname,
		AuthorID:  deviceID,
		CreatedAt: now,
		LikedBy:   make(map[string]bool),
	}
	bs.store.Messages.Add(msg)
	bs.publishMessages()
	return msg, nil
}

func (bs *BoardService) Edit(deviceID, messageID, text string, now time.Time) (*models.Message, error) {
	text, err := bs.validateText(text)
	if err != nil {
		return nil, err
	}
	msg, ok := bs.store.Messages.Get(messageID)
	if !ok {
		return nil, ErrMessageNotFound
	}
	if msg.AuthorID != deviceID {
		return nil, ErrNotAuthor
	}

	bs.store.Messages.SetText(messageID, text, now)
	if bs.store.Announcements.SetText(messageID, text) {
		bs.publishAnnouncements()
	}
	bs.publishMessages()

	updated, _ := bs.store.Messages.Get(messageID)
	return updated, nil
}

// Delete removes a message together with its pin and every like index entry
// pointing at it.
func (bs *BoardService) Delete(deviceID, messageID string) error {
	msg, ok := bs.store.Messages.Get(messageID)
	if !ok {
		return ErrMessageNotFound
	}
	if msg.AuthorID != deviceID {
		return ErrNotAuthor
	}

	bs.store.Messages.Delete(messageID)
	bs.store.UserLikes.RemoveMessage(messageID)
	if bs.store.Announcements.Delete(messageID) {
		bs.publishAnnouncements()
	}
	bs.publishMessages()
	return nil
}

// ToggleLike flips the device's like and mirrors the result into the per-user
// index so both views of the like stay in step.
func (bs *BoardService) ToggleLike(deviceID, messageID string) (bool, int, error) {
	if deviceID == "" {
		return false, 0, ErrEmptyDeviceID
	}
	liked, likes, ok := bs.store.Messages.ToggleLike(messageID, deviceID)
	if !ok {
		return false, 0, ErrMessageNotFound
	}
	if liked {
		bs.store.UserLikes.Like(deviceID, messageID)
	} else {
		bs.store.UserLikes.Unlike(deviceID, messageID)
	}
	bs.publishMessages()
	return liked, likes, nil
}

// List renders the whole board for one viewer: messages grouped into day
// buckets, newest day first, newest message first inside a bucket. Only the
// active day's bucket starts expanded. Expiry runs first, so a read never
// shows messages past the TTL even before the scheduler sweep fires.
func (bs *BoardService) List(deviceID string, now time.Time) []DayBucket {
	bs.Expire(now)

	activeDay := DayKey(now, bs.conf.Attendance.RolloverHour)
	liked := bs.store.UserLikes.MessagesFor(deviceID)

	grouped := make(map[string][]MessageView)
	for _, msg := range bs.store.Messages.All() {
		bucket := MessageBucket(msg.CreatedAt, bs.conf.Attendance.RolloverHour)
		grouped[bucket] = append(grouped[bucket], MessageView{
			ID:        msg.ID,
			Text:      msg.Text,
			Author:    msg.Author,
			AuthorID:  msg.AuthorID,
			CreatedAt: msg.CreatedAt,
			UpdatedAt: msg.UpdatedAt,
			Likes:     msg.Likes,
			LikedByMe: liked[msg.ID],
			Pinned:    bs.store.Announcements.Has(msg.ID),
		})
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	buckets := make([]DayBucket, 0, len(days))
	for _, day := range days {
		messages := grouped[day]
		sort.Slice(messages, func(i, j int) bool {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		})
		buckets = append(buckets, DayBucket{
			Day:      day,
			Expanded: day == activeDay,
			Messages: messages,
		})
	}
	return buckets
}

// Expire drops messages older than the board TTL. Pinned messages are exempt
// for as long as the pin lasts. Returns the number of messages removed.
func (bs *BoardService) Expire(now time.Time) int {
	cutoff := now.Add(-bs.conf.Board.MessageTTL)
	removed := 0
	for _, msg := range bs.store.Messages.All() {
		if !msg.CreatedAt.Before(cutoff) {
			continue
		}
		if bs.store.Announcements.Has(msg.ID) {
			continue
		}
		bs.store.Messages.Delete(msg.ID)
		bs.store.UserLikes.RemoveMessage(msg.ID)
		removed++
	}
	if removed > 0 {
		bs.publishMessages()
	}
	return removed
}

// Pin promotes a message to an announcement. Both caps are re-checked at
// pin time against the live pinned set; the per-author cap counts the
// message's author, not the requester.
func (bs *BoardService) Pin(deviceID, messageID string, now time.Time) error {
	msg, ok := bs.store.Messages.Get(messageID)
	if !ok {
		return ErrMessageNotFound
	}
	if bs.store.Announcements.Has(messageID) {
		return nil
	}
	if bs.store.Announcements.Len() >= bs.conf.Board.MaxPinned {
		return ErrPinLimitReached
	}
	if bs.store.Announcements.CountByAuthor(msg.AuthorID) >= bs.conf.Board.MaxPinnedPerAuthor {
		return ErrAuthorPinLimit
	}

	bs.store.Announcements.Put(&models.Announcement{
		MessageID: msg.ID,
		Text:      msg.Text,
		Author:    msg.Author,
		AuthorID:  msg.AuthorID,
		CreatedAt: msg.CreatedAt,
		PinnedAt:  now,
	})
	bs.publishAnnouncements()
	return nil
}

func (bs *BoardService) Unpin(messageID string) error {
	if !bs.store.Announcements.Has(messageID) {
		return ErrMessageNotFound
	}
	bs.store.Announcements.Delete(messageID)
	bs.publishAnnouncements()
	return nil
}

func (bs *BoardService) IsPinned(messageID string) bool {
	return bs.store.Announcements.Has(messageID)
}

func (bs *BoardService) Pins() []AnnouncementView {
	pins := bs.store.Announcements.All()
	sort.Slice(pins, func(i, j int) bool {
		return pins[i].PinnedAt.After(pins[j].PinnedAt)
	})

	views := make([]AnnouncementView, 0, len(pins))
	for _, a := range pins {
		text := a.Text
		if msg, ok := bs.store.Messages.Get(a.MessageID); ok {
			text = msg.Text
		}
		views = append(views, AnnouncementView{
			MessageID: a.MessageID,
			Text:      text,
			Author:    a.Author,
			CreatedAt: a.CreatedAt,
			PinnedAt:  a.PinnedAt,
		})
	}
	return views
}

func (bs *BoardService) MessageCount() int {
	return bs.store.Messages.Len()
}

func (bs *BoardService) PinnedCount() int {
	return bs.store.Announcements.Len()
}

func (bs *BoardService) validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > bs.conf.Board.MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return text, nil
}

func (bs *BoardService) publishMessages() {
	bs.store.Publish(store.TopicMessages, map[string]int{"messages": bs.store.Messages.Len()})
}

func (bs *BoardService) publishAnnouncements() {
	bs.store.Publish(store.TopicAnnouncements, bs.Pins())
}
