package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/s-brown01/Doin-sub000/internal/models"
)

// EventService owns the event feed: creation, per-event visibility, the
// paginated listings, and joiner membership. Visibility decisions funnel
// through models.CanView with friend sets from FriendService.
type EventService struct {
	db      DB
	friends *FriendService
}

func NewEventService(db DB, friends *FriendService) *EventService {
	return &EventService{db: db, friends: friends}
}

const eventColumns = `e.id, e.creator_id, u.username, e.visibility, e.location, e.event_time, e.description, e.created_at`

// Create persists a new event. An unset or unrecognized visibility is
// stored as public.
func (s *EventService) Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error) {
	event := &models.Event{
		CreatorID:   params.CreatorID,
		Visibility:  models.NormalizeVisibility(params.Visibility),
		Location:    params.Location,
		Time:        params.Time,
		Description: params.Description,
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO events (creator_id, visibility, location, event_time, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		event.CreatorID, event.Visibility, event.Location, event.Time, event.Description,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// GetByID returns an event the requester may see, or nil. Missing events
// and events hidden from the requester both come back nil so a caller
// cannot distinguish "does not exist" from "not yours to see".
func (s *EventService) GetByID(ctx context.Context, eventID, requesterID uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	err := s.db.QueryRow(ctx,
		`SELECT `+eventColumns+`
		 FROM events e JOIN users u ON u.id = e.creator_id
		 WHERE e.id = $1`,
		eventID,
	).Scan(&event.ID, &event.CreatorID, &event.CreatorUsername, &event.Visibility,
		&event.Location, &event.Time, &event.Description, &event.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	friendIDs, err := s.friends.FriendIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !models.CanView(event, requesterID, friendIDs) {
		return nil, nil
	}

	if err := s.loadEventRefs(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetPublicEvents pages through public events only, in feed order.
func (s *EventService) GetPublicEvents(ctx context.Context, page *models.PageRequest) (models.EventPage, error) {
	if !page.Valid() {
		return models.EmptyEventPage(), nil
	}
	return s.pageEvents(ctx, page, `e.visibility = 'public'`)
}

// GetUserEvents pages through one creator's events. The creator and their
// confirmed friends see everything; anyone else sees only public events.
func (s *EventService) GetUserEvents(ctx context.Context, creatorID, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error) {
	if !page.Valid() {
		return models.EmptyEventPage(), nil
	}

	seeAll := requesterID != uuid.Nil && requesterID == creatorID
	if !seeAll && requesterID != uuid.Nil {
		isFriend, err := s.friends.IsFriend(ctx, requesterID, creatorID)
		if err != nil {
			return models.EventPage{}, err
		}
		seeAll = isFriend
	}

	if seeAll {
		return s.pageEvents(ctx, page, `e.creator_id = $1`, creatorID)
	}
	return s.pageEvents(ctx, page, `e.creator_id = $1 AND e.visibility = 'public'`, creatorID)
}

// GetAll pages through the requester's feed: every public event plus the
// private events of the requester's confirmed friends. The requester's own
// private events are not part of this feed; they show under GetUserEvents.
func (s *EventService) GetAll(ctx context.Context, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error) {
	if !page.Valid() {
		return models.EmptyEventPage(), nil
	}

	friendSet, err := s.friends.FriendIDs(ctx, requesterID)
	if err != nil {
		return models.EventPage{}, err
	}
	friendIDs := make([]uuid.UUID, 0, len(friendSet))
	for id := range friendSet {
		friendIDs = append(friendIDs, id)
	}

	return s.pageEvents(ctx, page, `(e.visibility = 'public' OR e.creator_id = ANY($1))`, friendIDs)
}

// GetUpcomingEvents lists the creator's own strictly future events,
// soonest first. The slice is never nil.
func (s *EventService) GetUpcomingEvents(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events e JOIN users u ON u.id = e.creator_id
		 WHERE e.creator_id = $1 AND e.event_time > NOW()
		 ORDER BY e.event_time ASC`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// JoinUser records the user as a joiner of the event. It reports false
// without error when the event does not exist or the user already joined.
func (s *EventService) JoinUser(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return false, nil
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO event_joiners (event_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("join event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// pageEvents runs the shared count-then-page query pair for one WHERE
// clause. Totals are taken over the same filtered set the page reads from.
func (s *EventService) pageEvents(ctx context.Context, page *models.PageRequest, where string, args ...any) (models.EventPage, error) {
	var total int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events e WHERE `+where, args...,
	).Scan(&total)
	if err != nil {
		return models.EventPage{}, fmt.Errorf("count events: %w", err)
	}

	limitArgs := append(args, page.Size, page.Offset())
	rows, err := s.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events e JOIN users u ON u.id = e.creator_id
		 WHERE `+where+`
		 ORDER BY `+orderClause(page)+`
		 LIMIT $`+fmt.Sprint(len(args)+1)+` OFFSET $`+fmt.Sprint(len(args)+2),
		limitArgs...,
	)
	if err != nil {
		return models.EventPage{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return models.EventPage{}, err
	}
	return models.NewEventPage(events, page, total), nil
}

// orderClause maps the whitelisted sort field to its column. Only values
// from the SortField whitelist ever reach the SQL text.
func orderClause(page *models.PageRequest) string {
	column := "e.event_time"
	if page.SortField() == models.SortByCreated {
		column = "e.created_at"
	}
	if page != nil && page.Desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func scanEvents(rows Rows) ([]models.Event, error) {
	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		err := rows.Scan(&event.ID, &event.CreatorID, &event.CreatorUsername, &event.Visibility,
			&event.Location, &event.Time, &event.Description, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// loadEventRefs fills the image and joiner id lists for a single event.
func (s *EventService) loadEventRefs(ctx context.Context, event *models.Event) error {
	imageRows, err := s.db.Query(ctx,
		`SELECT image_id FROM event_images WHERE event_id = $1 ORDER BY position`,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("list event images: %w", err)
	}
	event.ImageIDs, err = scanUUIDs(imageRows)
	if err != nil {
		return err
	}

	joinerRows, err := s.db.Query(ctx,
		`SELECT user_id FROM event_joiners WHERE event_id = $1 ORDER BY joined_at`,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("list event joiners: %w", err)
	}
	event.JoinerIDs, err = scanUUIDs(joinerRows)
	return err
}

func scanUUIDs(rows Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	return ids, nil
}
