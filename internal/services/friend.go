package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/s-brown01/Doin-sub000/internal/logging"
	"github.com/s-brown01/Doin-sub000/internal/models"
)

// FriendService owns the friendship graph: directed request edges, the
// confirm/remove lifecycle, and the two-hop traversals built on top of it.
type FriendService struct {
	db DB
}

func NewFriendService(db DB) *FriendService {
	return &FriendService{db: db}
}

func valid(message string) models.ValidateResult {
	return models.ValidateResult{Valid: true, Message: message}
}

func invalid(message string) models.ValidateResult {
	return models.ValidateResult{Valid: false, Message: message}
}

// AddFriend creates a pending request edge from requester to target. A
// pending request in the opposite direction counts as a mutual request
// and confirms the friendship instead.
func (s *FriendService) AddFriend(ctx context.Context, requesterUsername, targetUsername string) (models.ValidateResult, error) {
	if strings.TrimSpace(requesterUsername) == "" {
		return invalid("invalid requester username"), nil
	}
	if strings.TrimSpace(targetUsername) == "" {
		return invalid("invalid target username"), nil
	}

	requester, err := s.lookupUser(ctx, requesterUsername)
	if errors.Is(err, ErrUserNotFound) {
		return invalid("invalid requester username"), nil
	}
	if err != nil {
		return models.ValidateResult{}, err
	}
	target, err := s.lookupUser(ctx, targetUsername)
	if errors.Is(err, ErrUserNotFound) {
		return invalid("invalid target username"), nil
	}
	if err != nil {
		return models.ValidateResult{}, err
	}

	if requester.ID == target.ID {
		return invalid("you cannot add yourself as a friend"), nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return models.ValidateResult{}, fmt.Errorf("begin add friend transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := lockUserPairForUpdate(ctx, tx, requester.ID, target.ID); err != nil {
		return models.ValidateResult{}, fmt.Errorf("lock users: %w", err)
	}

	forward, err := edgeStatus(ctx, tx, requester.ID, target.ID)
	if err != nil {
		return models.ValidateResult{}, err
	}
	reverse, err := edgeStatus(ctx, tx, target.ID, requester.ID)
	if err != nil {
		return models.ValidateResult{}, err
	}

	if forward == models.FriendshipStatusConfirmed || reverse == models.FriendshipStatusConfirmed {
		return invalid("you are already friends with " + target.Username), nil
	}
	if forward == models.FriendshipStatusPending {
		return invalid("you have already sent a request to " + target.Username), nil
	}

	if reverse == models.FriendshipStatusPending {
		// Both sides asked; the existing edge flips to confirmed.
		_, err := tx.Exec(ctx,
			`UPDATE friendships SET status = 'confirmed', confirmed_at = NOW()
			 WHERE requester_id = $1 AND target_id = $2`,
			target.ID, requester.ID,
		)
		if err != nil {
			return models.ValidateResult{}, fmt.Errorf("confirm friendship: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return models.ValidateResult{}, fmt.Errorf("commit add friend: %w", err)
		}
		committed = true
		logging.Info("Friendship confirmed by mutual request", map[string]interface{}{
			"requester": requester.Username,
			"target":    target.Username,
		})
		return valid("you are now friends with " + target.Username), nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO friendships (requester_id, target_id, status) VALUES ($1, $2, 'pending')`,
		requester.ID, target.ID,
	)
	if isUniqueViolation(err) {
		// A concurrent duplicate request lost the race to the constraint.
		return invalid("you have already sent a request to " + target.Username), nil
	}
	if err != nil {
		return models.ValidateResult{}, fmt.Errorf("insert friendship: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return models.ValidateResult{}, fmt.Errorf("commit add friend: %w", err)
	}
	committed = true
	return valid(requester.Username + " has sent a friend request to " + target.Username), nil
}

// ConfirmFriend marks the edge requester→confirmer confirmed, creating it
// when no prior request was recorded. The requester→confirmer direction is
// the canonical one throughout: confirming is always an action on the edge
// pointed at the confirmer.
func (s *FriendService) ConfirmFriend(ctx context.Context, confirmerUsername, requesterUsername string) (models.ValidateResult, error) {
	if strings.TrimSpace(confirmerUsername) == "" {
		return invalid("invalid confirmer username"), nil
	}
	if strings.TrimSpace(requesterUsername) == "" {
		return invalid("invalid requester username"), nil
	}

	confirmer, err := s.lookupUser(ctx, confirmerUsername)
	if errors.Is(err, ErrUserNotFound) {
		return invalid("invalid confirmer username"), nil
	}
	if err != nil {
		return models.ValidateResult{}, err
	}
	requester, err := s.lookupUser(ctx, requesterUsername)
	if errors.Is(err, ErrUserNotFound) {
		return invalid("invalid requester username"), nil
	}
	if err != nil {
		return models.ValidateResult{}, err
	}

	if confirmer.ID == requester.ID {
		return invalid("you cannot confirm yourself as a friend"), nil
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO friendships (requester_id, target_id, status, confirmed_at)
		 VALUES ($1, $2, 'confirmed', NOW())
		 ON CONFLICT (requester_id, target_id)
		 DO UPDATE SET status = 'confirmed', confirmed_at = COALESCE(friendships.confirmed_at, NOW())`,
		requester.ID, confirmer.ID,
	)
	if err != nil {
		return models.ValidateResult{}, fmt.Errorf("confirm friendship: %w", err)
	}

	return valid("you are now friends with " + requester.Username), nil
}

// RemoveFriend deletes every edge between the pair, whichever side asked
// first. Removing an absent friendship is a validation failure, so calling
// it twice in a row fails the second time.
func (s *FriendService) RemoveFriend(ctx context.Context, username, friendUsername string) (models.ValidateResult, error) {
	if strings.TrimSpace(username) == "" {
		return invalid("invalid user username"), nil
	}
	if strings.TrimSpace(friendUsername) == "" {
		return invalid("invalid friend username"), nil
	}

	user, err := s.lookupUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return invalid("invalid user username"), nil
	}
	if err != nil {
		return models.ValidateResult{}, err
	}
	friend, err := s.lookupUser(ctx, friendUsername)
	if errors.Is(err, ErrUserNotFound) {
		return invalid("invalid friend username"), nil
	}
	if err != nil {
		return models.ValidateResult{}, err
	}

	if user.ID == friend.ID {
		return invalid("you cannot remove yourself"), nil
	}

	tag, err := s.db.Exec(ctx,
		`DELETE FROM friendships
		 WHERE (requester_id = $1 AND target_id = $2)
		    OR (requester_id = $2 AND target_id = $1)`,
		user.ID, friend.ID,
	)
	if err != nil {
		return models.ValidateResult{}, fmt.Errorf("delete friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invalid("you are not friends with " + friend.Username), nil
	}

	return valid("you are no longer friends with " + friend.Username), nil
}

// GetFriends returns every user connected to the given one by any edge,
// pending or confirmed, seen from the viewer's side. Unknown usernames
// yield an empty set.
func (s *FriendService) GetFriends(ctx context.Context, username string) ([]models.FriendshipView, error) {
	user, err := s.lookupUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return []models.FriendshipView{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.username, f.status, u.profile_picture_id
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.requester_id = $1 THEN f.target_id ELSE f.requester_id END
		 WHERE f.requester_id = $1 OR f.target_id = $1
		 ORDER BY u.username`,
		user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	seen := make(map[uuid.UUID]int)
	friends := []models.FriendshipView{}
	for rows.Next() {
		var view models.FriendshipView
		if err := rows.Scan(&view.ID, &view.Username, &view.Status, &view.ProfilePictureID); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		// Both directions may hold an edge; keep one entry per user,
		// preferring confirmed.
		if idx, ok := seen[view.ID]; ok {
			if view.Status == models.FriendshipStatusConfirmed {
				friends[idx].Status = view.Status
			}
			continue
		}
		seen[view.ID] = len(friends)
		friends = append(friends, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

// GetFriendRequests returns pending requests pointed at the given user.
func (s *FriendService) GetFriendRequests(ctx context.Context, username string) ([]models.FriendshipView, error) {
	user, err := s.lookupUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return []models.FriendshipView{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.username, u.profile_picture_id
		 FROM friendships f
		 JOIN users u ON u.id = f.requester_id
		 WHERE f.target_id = $1 AND f.status = 'pending'
		 ORDER BY f.created_at DESC`,
		user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	requests := []models.FriendshipView{}
	for rows.Next() {
		view := models.FriendshipView{Status: models.FriendshipStatusPending}
		if err := rows.Scan(&view.ID, &view.Username, &view.ProfilePictureID); err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		requests = append(requests, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	return requests, nil
}

// GetFriendsOfFriends returns users exactly two confirmed hops away,
// excluding the origin and anyone already a confirmed direct friend.
func (s *FriendService) GetFriendsOfFriends(ctx context.Context, username string) ([]models.FriendshipView, error) {
	user, err := s.lookupUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return []models.FriendshipView{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`WITH confirmed AS (
			SELECT requester_id AS user_id, target_id AS friend_id
			FROM friendships WHERE status = 'confirmed'
			UNION
			SELECT target_id, requester_id
			FROM friendships WHERE status = 'confirmed'
		)
		SELECT DISTINCT u.id, u.username, u.profile_picture_id
		FROM confirmed c1
		JOIN confirmed c2 ON c2.user_id = c1.friend_id
		JOIN users u ON u.id = c2.friend_id
		WHERE c1.user_id = $1
		  AND c2.friend_id <> $1
		  AND c2.friend_id NOT IN (SELECT friend_id FROM confirmed WHERE user_id = $1)
		ORDER BY u.username`,
		user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list friends of friends: %w", err)
	}
	defer rows.Close()

	found := []models.FriendshipView{}
	for rows.Next() {
		view := models.FriendshipView{Status: models.FriendshipStatusNotAdded}
		if err := rows.Scan(&view.ID, &view.Username, &view.ProfilePictureID); err != nil {
			return nil, fmt.Errorf("scan friend of friend: %w", err)
		}
		found = append(found, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friends of friends: %w", err)
	}
	return found, nil
}

// GetFriendshipStatus describes the relationship from viewer to target.
// Anything unknown or malformed reads as notadded.
func (s *FriendService) GetFriendshipStatus(ctx context.Context, viewerUsername, targetUsername string) (models.FriendshipStatus, error) {
	viewer, err := s.lookupUser(ctx, viewerUsername)
	if errors.Is(err, ErrUserNotFound) {
		return models.FriendshipStatusNotAdded, nil
	}
	if err != nil {
		return models.FriendshipStatusNotAdded, err
	}
	target, err := s.lookupUser(ctx, targetUsername)
	if errors.Is(err, ErrUserNotFound) {
		return models.FriendshipStatusNotAdded, nil
	}
	if err != nil {
		return models.FriendshipStatusNotAdded, err
	}

	return s.statusBetween(ctx, viewer.ID, target.ID)
}

// SearchUsers finds users by username fragment, each tagged with the
// viewer's current relationship to them.
func (s *FriendService) SearchUsers(ctx context.Context, viewerUsername, query string) ([]models.FriendshipView, error) {
	viewer, err := s.lookupUser(ctx, viewerUsername)
	if errors.Is(err, ErrUserNotFound) {
		return []models.FriendshipView{}, nil
	}
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.FriendshipView{}, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, username, profile_picture_id
		 FROM users
		 WHERE username ILIKE '%' || $1 || '%' AND id <> $2
		 ORDER BY username
		 LIMIT 20`,
		query, viewer.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	found := []models.FriendshipView{}
	for rows.Next() {
		var view models.FriendshipView
		if err := rows.Scan(&view.ID, &view.Username, &view.ProfilePictureID); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		found = append(found, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	for i := range found {
		status, err := s.statusBetween(ctx, viewer.ID, found[i].ID)
		if err != nil {
			return nil, err
		}
		found[i].Status = status
	}
	return found, nil
}

// FriendIDs returns the confirmed friend id set for a user. An absent
// requester (uuid.Nil) has no friends.
func (s *FriendService) FriendIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids := make(map[uuid.UUID]struct{})
	if userID == uuid.Nil {
		return ids, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT CASE WHEN requester_id = $1 THEN target_id ELSE requester_id END
		 FROM friendships
		 WHERE (requester_id = $1 OR target_id = $1) AND status = 'confirmed'`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list friend ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan friend id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friend ids: %w", err)
	}
	return ids, nil
}

// IsFriend reports whether a confirmed friendship exists between the pair.
func (s *FriendService) IsFriend(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE status = 'confirmed'
			  AND ((requester_id = $1 AND target_id = $2)
			    OR (requester_id = $2 AND target_id = $1))
		)`,
		userA, userB,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return exists, nil
}

type friendUser struct {
	ID               uuid.UUID
	Username         string
	ProfilePictureID *uuid.UUID
}

func (s *FriendService) lookupUser(ctx context.Context, username string) (*friendUser, error) {
	user := &friendUser{}
	err := s.db.QueryRow(ctx,
		`SELECT id, username, profile_picture_id FROM users WHERE LOWER(username) = LOWER($1)`,
		username,
	).Scan(&user.ID, &user.Username, &user.ProfilePictureID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *FriendService) statusBetween(ctx context.Context, viewerID, targetID uuid.UUID) (models.FriendshipStatus, error) {
	forward, err := edgeStatus(ctx, s.db, viewerID, targetID)
	if err != nil {
		return models.FriendshipStatusNotAdded, err
	}
	if forward != models.FriendshipStatusNotAdded {
		return forward, nil
	}
	return edgeStatus(ctx, s.db, targetID, viewerID)
}

func edgeStatus(ctx context.Context, q DBConn, fromID, toID uuid.UUID) (models.FriendshipStatus, error) {
	var status models.FriendshipStatus
	err := q.QueryRow(ctx,
		`SELECT status FROM friendships WHERE requester_id = $1 AND target_id = $2`,
		fromID, toID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.FriendshipStatusNotAdded, nil
	}
	if err != nil {
		return models.FriendshipStatusNotAdded, fmt.Errorf("read friendship status: %w", err)
	}
	return status, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
