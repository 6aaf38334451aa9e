package domain

import "time"

// Default configuration values
const (
	DefaultDailyCapacity = 2
	DefaultTimezone      = "Europe/Moscow"
)

// DefaultClosedWeekdays выходные по умолчанию
var DefaultClosedWeekdays = []time.Weekday{time.Saturday, time.Sunday}

// Business validation constants
const (
	MinDailyCapacity      = 1
	MaxDailyCapacity      = 50
	MinParticipantsCount  = 1
	MaxParticipantsCount  = 200
	MaxNameLength         = 200
	MaxGroupLabelLength   = 20
	MaxGroupProfileLength = 100
	MaxPhoneLength        = 20
	MaxNotesLength        = 2000
	MaxBlockReasonLength  = 500
)

// Time format constants
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02.01.2006" // DD.MM.YYYY
)

// MonthNames названия месяцев для календаря
var MonthNames = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// WeekdaysShort заголовок календаря, неделя начинается с понедельника
var WeekdaysShort = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// WeekdaysFull полные названия дней недели, с понедельника
var WeekdaysFull = [7]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"}

// StatusTitles человекочитаемые статусы для выгрузок
var StatusTitles = map[BookingStatus]string{
	StatusPending:   "Ожидает",
	StatusConfirmed: "Подтверждена",
	StatusCancelled: "Отменена",
}
