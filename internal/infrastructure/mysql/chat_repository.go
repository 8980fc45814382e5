package mysql

import (
	"context"
	"database/sql"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

const defaultMessageLimit = 50

type MySQLChatRepository struct {
	db *sql.DB
}

func NewMySQLChatRepository(db *sql.DB) *MySQLChatRepository {
	return &MySQLChatRepository{db: db}
}

// GetOrCreatePrivateChat returns the existing one-to-one room for the pair
// or creates a fresh room with both participants.
func (r *MySQLChatRepository) GetOrCreatePrivateChat(ctx context.Context, userID1, userID2 string) (string, error) {
	query := `
        SELECT cr.id
        FROM chat_rooms cr
        JOIN chat_participants p1 ON p1.chat_room_id = cr.id AND p1.user_id = ?
        JOIN chat_participants p2 ON p2.chat_room_id = cr.id AND p2.user_id = ?
        WHERE cr.type = 'private'
        LIMIT 1
    `
	var roomID string
	err := r.db.QueryRowContext(ctx, query, userID1, userID2).Scan(&roomID)
	if err == nil {
		return roomID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	roomID = utils.NewID()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chat_rooms (id, type, created_at) VALUES (?, 'private', ?)`,
		roomID, time.Now()); err != nil {
		return "", err
	}

	participantQuery := `
        INSERT INTO chat_participants (id, chat_room_id, user_id, joined_at)
        VALUES (?, ?, ?, ?), (?, ?, ?, ?)
    `
	now := time.Now()
	if _, err := tx.ExecContext(ctx, participantQuery,
		utils.NewID(), roomID, userID1, now,
		utils.NewID(), roomID, userID2, now); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return roomID, nil
}

func (r *MySQLChatRepository) RoomMessages(ctx context.Context, chatRoomID string, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	query := `
        SELECT id, chat_room_id, sender_id, content, message_type, file_url, created_at
        FROM messages
        WHERE chat_room_id = ?
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := r.db.QueryContext(ctx, query, chatRoomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		var messageType string
		var fileURL sql.NullString
		if err := rows.Scan(&m.ID, &m.ChatRoomID, &m.SenderID, &m.Content,
			&messageType, &fileURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.MessageType = domain.MessageType(messageType)
		m.FileURL = fileURL.String
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// SaveMessage assigns the server id and timestamp and returns the
// canonical persisted copy the relay broadcasts.
func (r *MySQLChatRepository) SaveMessage(ctx context.Context, draft *domain.MessageDraft) (*domain.Message, error) {
	message := &domain.Message{
		ID:          utils.NewID(),
		ChatRoomID:  draft.ChatRoomID,
		SenderID:    draft.SenderID,
		Content:     draft.Content,
		MessageType: draft.MessageType,
		FileURL:     draft.FileURL,
		CreatedAt:   time.Now(),
	}
	if message.MessageType == "" {
		message.MessageType = domain.MessageText
	}

	query := `
        INSERT INTO messages (id, chat_room_id, sender_id, content, message_type, file_url, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.ChatRoomID, message.SenderID, message.Content,
		string(message.MessageType), message.FileURL, message.CreatedAt)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (r *MySQLChatRepository) UserChatRooms(ctx context.Context, userID string) ([]*domain.ChatRoom, error) {
	query := `
        SELECT cr.id, cr.type, cr.group_id, cr.name, cr.created_at
        FROM chat_rooms cr
        JOIN chat_participants p ON p.chat_room_id = cr.id
        WHERE p.user_id = ?
        ORDER BY cr.created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chatRooms []*domain.ChatRoom
	for rows.Next() {
		var room domain.ChatRoom
		var roomType string
		var groupID, name sql.NullString
		if err := rows.Scan(&room.ID, &roomType, &groupID, &name, &room.CreatedAt); err != nil {
			return nil, err
		}
		room.Type = domain.ChatRoomType(roomType)
		room.GroupID = groupID.String
		room.Name = name.String
		chatRooms = append(chatRooms, &room)
	}
	return chatRooms, rows.Err()
}
