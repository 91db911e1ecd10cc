package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrVersionConflict возвращается, когда версия бронирования изменилась с момента чтения
	ErrVersionConflict = errors.New("booking.repository: version conflict")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrMarshal возвращается при ошибке сериализации snapshot-полей
	ErrMarshal = errors.New("booking.repository: failed to marshal snapshot")
)
