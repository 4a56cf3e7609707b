package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	"github.com/m04kA/LCP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/LCP-AppointmentService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с платежными заказами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый платежный заказ со статусом PENDING.
// Сумма фиксируется при создании и больше не изменяется.
func (r *Repository) Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	metadata, err := marshalMetadata(order.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal metadata: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("payment_orders").
		Columns(
			"id",
			"user_id",
			"appointment_id",
			"amount",
			"currency",
			"provider",
			"status",
			"metadata",
		).
		Values(
			order.ID,
			order.UserID,
			order.AppointmentID,
			order.Amount,
			order.Currency,
			order.Provider,
			order.Status,
			metadata,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByAppointmentID получает платеж по ID записи.
// Внутри транзакции блокирует строку для атомарного read-modify-write.
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID string) (*domain.PaymentOrder, error) {
	return r.getByColumn(ctx, "GetByAppointmentID", squirrel.Eq{"appointment_id": appointmentID})
}

// GetByProviderOrderID получает платеж по идентификатору заказа,
// присвоенному провайдером. Используется webhook-обработчиком: внешний
// вызов не знает локальных идентификаторов.
func (r *Repository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.PaymentOrder, error) {
	return r.getByColumn(ctx, "GetByProviderOrderID", squirrel.Eq{"provider_order_id": providerOrderID})
}

// GetByProviderPaymentID получает платеж по идентификатору платежа провайдера
func (r *Repository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*domain.PaymentOrder, error) {
	return r.getByColumn(ctx, "GetByProviderPaymentID", squirrel.Eq{"provider_payment_id": providerPaymentID})
}

// SetProviderOrder сохраняет идентификатор заказа провайдера и его эхо в metadata
func (r *Repository) SetProviderOrder(ctx context.Context, id string, providerOrderID string, metadata map[string]string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := marshalMetadata(metadata)
	if err != nil {
		return fmt.Errorf("%w: SetProviderOrder - marshal metadata: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("payment_orders").
		Set("provider_order_id", providerOrderID).
		Set("metadata", encoded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetProviderOrder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetProviderOrder - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetProviderOrder - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// MarkCompleted переводит платеж PENDING -> COMPLETED, сохраняя идентификатор
// платежа провайдера и подпись. Условие status = PENDING гарантирует, что
// терминальный статус выставляется ровно один раз.
func (r *Repository) MarkCompleted(ctx context.Context, id string, providerPaymentID string, signature *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_orders").
		Set("status", domain.PaymentCompleted).
		Set("provider_payment_id", providerPaymentID).
		Set("signature", signature).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// MarkFailed переводит платеж PENDING -> FAILED
func (r *Repository) MarkFailed(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_orders").
		Set("status", domain.PaymentFailed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// getByColumn общий SELECT платежа по условию
func (r *Repository) getByColumn(ctx context.Context, method string, cond squirrel.Eq) (*domain.PaymentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"appointment_id",
		"amount",
		"currency",
		"provider",
		"status",
		"provider_order_id",
		"provider_payment_id",
		"signature",
		"metadata",
		"created_at",
		"updated_at",
	).
		From("payment_orders").
		Where(cond).
		OrderBy("created_at DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var order domain.PaymentOrder
	var metadata []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.AppointmentID,
		&order.Amount,
		&order.Currency,
		&order.Provider,
		&order.Status,
		&order.ProviderOrderID,
		&order.ProviderPaymentID,
		&order.Signature,
		&metadata,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment order: %v", ErrScanRow, method, err)
	}

	order.Metadata, err = unmarshalMetadata(metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - unmarshal metadata: %v", ErrScanRow, method, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// marshalMetadata сериализует metadata в JSONB (NULL для пустой)
func marshalMetadata(metadata map[string]string) ([]byte, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	return json.Marshal(metadata)
}

// unmarshalMetadata десериализует metadata из JSONB
func unmarshalMetadata(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}
