// Package callbacks определяет типизированные действия inline-кнопок.
// Кодирование и разбор callback data сведены в одну пару Encode/Decode,
// чтобы формат токена нигде не разбирался вручную.
package callbacks

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind — вид действия, закодированного в кнопке
type Kind string

const (
	KindApprovePayment Kind = "approve_payment" // approve_payment:<request_id>
	KindRejectPayment  Kind = "reject_payment"  // reject_payment:<request_id>
	KindAddMember      Kind = "add_member"      // add_member:<student_id>
	KindFinishGroup    Kind = "finish_group"
	KindSkipProgram    Kind = "skip_program"
	KindProgressKind   Kind = "progress_kind" // progress_kind:<порядковый номер вида>
	KindDeleteItem     Kind = "delete_item"   // delete_item:<knowledge_item_id>
	KindAddItem        Kind = "add_item"
	KindPaySessions    Kind = "pay_sessions"
)

// Action — разобранное действие кнопки: вид плюс id сущности
type Action struct {
	Kind Kind
	ID   int64
}

// Encode сериализует действие в callback data
func (a Action) Encode() string {
	if a.ID == 0 {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s:%d", a.Kind, a.ID)
}

// Decode разбирает callback data обратно в действие
func Decode(data string) (Action, error) {
	kind, rawID, found := strings.Cut(data, ":")
	if kind == "" {
		return Action{}, fmt.Errorf("empty callback data")
	}

	action := Action{Kind: Kind(kind)}
	if !found {
		return action, nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Action{}, fmt.Errorf("parse callback id %q: %w", rawID, err)
	}

	action.ID = id
	return action, nil
}
