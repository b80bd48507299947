package service

import "errors"

var (
	// ErrNotFound — сущность не существует или ссылка устарела
	ErrNotFound = errors.New("not found")

	// ErrNotTrainer — действие доступно только тренеру
	ErrNotTrainer = errors.New("not a trainer")

	// ErrAlreadyProcessed — заявка уже решена, повтор ничего не меняет
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrAlreadyMember — ученик уже состоит в группе
	ErrAlreadyMember = errors.New("already a group member")

	// ErrValidation — некорректный ввод, диалог остаётся на том же шаге
	ErrValidation = errors.New("validation failed")
)
