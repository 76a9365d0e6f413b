package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReasonRequired gates edits touching critical asset fields: the
	// caller must resubmit with a non-empty justification.
	ErrReasonRequired = errors.New("un motif est requis pour modifier un champ critique")

	// ErrCodeIncomplete rejects creation when the inventory code cannot be
	// fully generated.
	ErrCodeIncomplete = errors.New("impossible de générer le code complet : vérifiez l'année, la localisation et la catégorie")

	ErrMissingRequired = errors.New("veuillez remplir les champs obligatoires (Localisation, Catégorie, Nom)")

	ErrInvalidCredentials = errors.New("identifiants incorrects")
)

// MissingColumnsError aborts an import before any row is processed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "colonnes manquantes : " + strings.Join(e.Columns, ", ")
}

// ImportValidationError rejects a whole import batch; Rows holds one
// message per offending row.
type ImportValidationError struct {
	Rows []string
}

func (e *ImportValidationError) Error() string {
	return fmt.Sprintf("importation annulée : %d erreur(s) détectée(s)", len(e.Rows))
}
