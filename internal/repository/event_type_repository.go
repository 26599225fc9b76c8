package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/model"
)

// EventTypeRepo reads the event type catalog.
type EventTypeRepo struct {
	conns database.Provider
}

// NewEventTypeRepo returns an EventTypeRepo drawing connections from p.
func NewEventTypeRepo(p database.Provider) *EventTypeRepo { return &EventTypeRepo{conns: p} }

// List returns every event type ordered by EventID.
func (r *EventTypeRepo) List(ctx context.Context) ([]model.EventType, error) {
	var out []model.EventType
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			"SELECT EventID, EventName, COALESCE(Description, '') FROM EventType ORDER BY EventID")
		if err != nil {
			return classify(err, "list event types", nil)
		}
		defer rows.Close()
		for rows.Next() {
			var et model.EventType
			if err := rows.Scan(&et.EventID, &et.EventName, &et.Description); err != nil {
				return classify(err, "scan event type", nil)
			}
			out = append(out, et)
		}
		return classify(rows.Err(), "list event types", nil)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.EventType{}
	}
	return out, nil
}
