package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

type sentEvent struct {
	event   domain.EventType
	payload interface{}
}

type mockConn struct {
	id      string
	mu      sync.Mutex
	sent    []sentEvent
	sendErr error
	closed  bool
}

func newMockConn(id string) *mockConn {
	return &mockConn{id: id}
}

func (m *mockConn) ID() string { return m.id }

func (m *mockConn) Send(event domain.EventType, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEvent{event: event, payload: payload})
	return nil
}

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConn) received(event domain.EventType) []sentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentEvent
	for _, s := range m.sent {
		if s.event == event {
			out = append(out, s)
		}
	}
	return out
}

func (m *mockConn) totalSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	onlineFlags map[string][]bool
	updateErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[string]*domain.User),
		onlineFlags: make(map[string][]bool),
	}
}

func (f *fakeUserRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpsertUser(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateOnlineStatus(ctx context.Context, id string, online bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.onlineFlags[id] = append(f.onlineFlags[id], online)
	return nil
}

func (f *fakeUserRepo) flags(id string) []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.onlineFlags[id]
}

type fakeFriendshipRepo struct {
	friends map[string][]*domain.User
	listErr error
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{friends: make(map[string][]*domain.User)}
}

func (f *fakeFriendshipRepo) CreateRequest(ctx context.Context, requesterID, receiverID string) (*domain.Friendship, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFriendshipRepo) PendingRequests(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	return nil, nil
}

func (f *fakeFriendshipRepo) Respond(ctx context.Context, friendshipID string, status domain.FriendshipStatus) error {
	return nil
}

func (f *fakeFriendshipRepo) Friends(ctx context.Context, userID string) ([]*domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.friends[userID], nil
}

type fakeChatRepo struct {
	mu      sync.Mutex
	saved   []*domain.Message
	saveErr error
}

func (f *fakeChatRepo) GetOrCreatePrivateChat(ctx context.Context, userID1, userID2 string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeChatRepo) RoomMessages(ctx context.Context, chatRoomID string, limit int) ([]*domain.Message, error) {
	return nil, nil
}

func (f *fakeChatRepo) SaveMessage(ctx context.Context, draft *domain.MessageDraft) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	message := &domain.Message{
		ID:          utils.NewID(),
		ChatRoomID:  draft.ChatRoomID,
		SenderID:    draft.SenderID,
		Content:     draft.Content,
		MessageType: draft.MessageType,
		FileURL:     draft.FileURL,
		CreatedAt:   time.Now(),
	}
	f.saved = append(f.saved, message)
	return message, nil
}

func (f *fakeChatRepo) UserChatRooms(ctx context.Context, userID string) ([]*domain.ChatRoom, error) {
	return nil, nil
}

type fakePresenceCache struct {
	mu     sync.Mutex
	online map[string]bool
}

func newFakePresenceCache() *fakePresenceCache {
	return &fakePresenceCache{online: make(map[string]bool)}
}

func (f *fakePresenceCache) SetOnline(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online[userID] = true
	return nil
}

func (f *fakePresenceCache) SetOffline(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online[userID] = false
	return nil
}

func (f *fakePresenceCache) IsOnline(ctx context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online[userID], nil
}
