package model

import "errors"

var (
	// ErrNotFound объект не найден
	ErrNotFound = errors.New("not found")

	// ErrConflict запрошенное время уже занято другой записью
	ErrConflict = errors.New("slot already taken")

	// ErrPersistence ошибка хранилища
	ErrPersistence = errors.New("persistence failure")

	// ErrValidation некорректные входные данные или недопустимый переход статуса
	ErrValidation = errors.New("validation failed")

	// ErrForbidden операция не разрешена пользователю
	ErrForbidden = errors.New("forbidden")
)
