package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/jmoiron/sqlx"
)

var interviewColumns = []string{
	"id", "requester_id", "interviewer_id", "role", "interview_type", "preferred_date",
	"duration", "status", "meeting_link", "calendar_event_id", "notes", "feedback",
	"rating", "created_at", "updated_at",
}

type InterviewRequestRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewInterviewRequestRepository(db *sqlx.DB, log *slog.Logger) *InterviewRequestRepository {
	return &InterviewRequestRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

// interviewViewRow is the flat shape of a request joined with both participants.
type interviewViewRow struct {
	domain.InterviewRequest
	RequesterName    string         `db:"requester_name"`
	RequesterEmail   string         `db:"requester_email"`
	InterviewerName  sql.NullString `db:"interviewer_name"`
	InterviewerEmail sql.NullString `db:"interviewer_email"`
}

func (row *interviewViewRow) toView() domain.InterviewRequestView {
	view := domain.InterviewRequestView{
		InterviewRequest: row.InterviewRequest,
		Requester: domain.Participant{
			ID:       row.RequesterID,
			FullName: row.RequesterName,
			Email:    row.RequesterEmail,
		},
	}

	if row.InterviewerID != nil {
		view.Interviewer = &domain.Participant{
			ID:       *row.InterviewerID,
			FullName: row.InterviewerName.String,
			Email:    row.InterviewerEmail.String,
		}
	}

	return view
}

func (r *InterviewRequestRepository) viewQuery() sq.SelectBuilder {
	cols := make([]string, 0, len(interviewColumns)+4)
	for _, c := range interviewColumns {
		cols = append(cols, "ir."+c)
	}

	cols = append(cols,
		"req.full_name AS requester_name",
		"req.email AS requester_email",
		"iv.full_name AS interviewer_name",
		"iv.email AS interviewer_email",
	)

	return r.sq.Select(cols...).
		From("interview_requests ir").
		Join("users req ON req.id = ir.requester_id").
		LeftJoin("users iv ON iv.id = ir.interviewer_id")
}

func (r *InterviewRequestRepository) Create(ctx context.Context, req *domain.InterviewRequest) error {
	const op = "internal.repository.postgres.interview.Create"

	query, args, err := r.sq.Insert("interview_requests").
		Columns("id", "requester_id", "role", "interview_type", "preferred_date",
			"duration", "status", "notes", "created_at", "updated_at").
		Values(req.ID, req.RequesterID, req.Role, req.InterviewType, req.PreferredDate,
			req.Duration, req.Status, req.Notes, req.CreatedAt, req.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: requester with id '%s'", op, apperrors.ErrNotFound, req.RequesterID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *InterviewRequestRepository) GetByID(ctx context.Context, id string) (*domain.InterviewRequest, error) {
	const op = "internal.repository.postgres.interview.GetByID"

	query, args, err := r.sq.Select(interviewColumns...).
		From("interview_requests").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.InterviewRequest
	if err := r.db.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: interview request with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get interview request: %w", op, err)
	}

	return &req, nil
}

func (r *InterviewRequestRepository) GetView(ctx context.Context, id string) (*domain.InterviewRequestView, error) {
	const op = "internal.repository.postgres.interview.GetView"

	query, args, err := r.viewQuery().Where(sq.Eq{"ir.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row interviewViewRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: interview request with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get interview request: %w", op, err)
	}

	view := row.toView()

	return &view, nil
}

func (r *InterviewRequestRepository) FindMany(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewRequestView, error) {
	const op = "internal.repository.postgres.interview.FindMany"

	qb := r.viewQuery()

	if filter.RequesterID != "" {
		qb = qb.Where(sq.Eq{"ir.requester_id": filter.RequesterID})
	}

	if filter.ExcludeRequesterID != "" {
		qb = qb.Where(sq.NotEq{"ir.requester_id": filter.ExcludeRequesterID})
	}

	if filter.ParticipantID != "" {
		qb = qb.Where(sq.Or{
			sq.Eq{"ir.requester_id": filter.ParticipantID},
			sq.Eq{"ir.interviewer_id": filter.ParticipantID},
		})
	}

	if len(filter.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"ir.status": statusStrings(filter.Statuses)})
	}

	query, args, err := qb.OrderBy("ir.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []interviewViewRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	views := make([]domain.InterviewRequestView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}

	return views, nil
}

func (r *InterviewRequestRepository) Update(
	ctx context.Context,
	id string,
	guard domain.TransitionGuard,
	patch domain.InterviewPatch,
) (*domain.InterviewRequest, error) {
	const op = "internal.repository.postgres.interview.Update"
	log := r.log.With(slog.String("op", op), slog.String("request_id", id))

	ub := r.sq.Update("interview_requests").
		Set("status", patch.Status).
		Set("updated_at", patch.UpdatedAt).
		Where(sq.Eq{"id": id})

	if patch.InterviewerID != nil {
		ub = ub.Set("interviewer_id", *patch.InterviewerID)
	}

	if patch.MeetingLink != nil {
		ub = ub.Set("meeting_link", *patch.MeetingLink)
	}

	if patch.CalendarEventID != nil {
		ub = ub.Set("calendar_event_id", *patch.CalendarEventID)
	}

	if patch.Feedback != nil {
		ub = ub.Set("feedback", *patch.Feedback)
	}

	if patch.Rating != nil {
		ub = ub.Set("rating", *patch.Rating)
	}

	ub = applyGuard(ub, guard)

	query, args, err := ub.Suffix("RETURNING " + strings.Join(interviewColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var updated domain.InterviewRequest
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
		}

		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}

		log.Info("transition guard no longer holds", slog.String("target_status", string(patch.Status)))

		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrStatusConflict)
	}

	return &updated, nil
}

func applyGuard(ub sq.UpdateBuilder, guard domain.TransitionGuard) sq.UpdateBuilder {
	if len(guard.Statuses) > 0 {
		ub = ub.Where(sq.Eq{"status": statusStrings(guard.Statuses)})
	}

	if guard.RequesterID != "" {
		ub = ub.Where(sq.Eq{"requester_id": guard.RequesterID})
	}

	if guard.NotRequesterID != "" {
		ub = ub.Where(sq.NotEq{"requester_id": guard.NotRequesterID})
	}

	if guard.InterviewerID != "" {
		ub = ub.Where(sq.Eq{"interviewer_id": guard.InterviewerID})
	}

	return ub
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}

	return out
}
