package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Date            time.Time // Дата для получения слотов (без времени)
	StylistID       string    // Пусто или "any" - любой мастер
	ServiceDuration *int      // Длительность услуги в минутах, nil - по умолчанию
}

// Options правила расчёта занятости
type Options struct {
	HoldUnpaidSlots bool
	Location        *time.Location
}

// Response модель ответа со слотами дня
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	StylistID       string
	ServiceDuration int
	SlotDuration    int    // Шаг сетки из конфигурации
	Closed          bool   // Выходной день салона
	Slots           []Slot // Слоты в порядке возрастания времени
}

// Slot модель временного слота
type Slot struct {
	Time      types.TimeString // Время начала слота (например, "10:00")
	Available bool
	IsPast    bool
}
