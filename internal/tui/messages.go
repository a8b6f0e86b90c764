package tui

import (
	"fmt"

	"github.com/naveenspark/notas/pkg/client"
)

// catalog holds every user-facing string for one language.
type catalog struct {
	UsernameLabel     string
	UsernameRequired  string
	LoginUnknownError string
	LoginNetworkError string
	LoggingIn         string
	Welcome           string // format: username

	Loading    string
	NoNotes    string
	LoadFailed string

	NewNote          string
	TitleLabel       string
	DescriptionLabel string
	TagsLabel        string
	NoTags           string
	TitleRequired    string
	Saving           string

	Edit   string
	Delete string
	Save   string
	Cancel string

	CreateFailed  string // format: server detail
	CreateNetwork string
	UpdateFailed  string
	UpdateNetwork string
	DeleteFailed  string
	DeleteNetwork string
	ConfirmDelete string

	Copied     string
	CopyFailed string
	Dismiss    string
	Yes        string
	No         string
	HelpHint   string
}

var catalogs = map[string]catalog{
	"pt": {
		UsernameLabel:     "usuário",
		UsernameRequired:  "Por favor, digite um nome de usuário.",
		LoginUnknownError: "Ocorreu um erro desconhecido.",
		LoginNetworkError: "Falha ao conectar com o servidor. Por favor, tente novamente mais tarde.",
		LoggingIn:         "entrando...",
		Welcome:           "Bem-vindo(a), %s!",

		Loading:    "carregando notas...",
		NoNotes:    "Nenhuma nota encontrada. Crie uma!",
		LoadFailed: "Não foi possível carregar as notas.",

		NewNote:          "Nova nota",
		TitleLabel:       "título",
		DescriptionLabel: "descrição",
		TagsLabel:        "tags",
		NoTags:           "nenhuma",
		TitleRequired:    "O título é obrigatório.",
		Saving:           "salvando...",

		Edit:   "editar",
		Delete: "apagar",
		Save:   "salvar",
		Cancel: "cancelar",

		CreateFailed:  "Erro ao criar nota: %s",
		CreateNetwork: "Ocorreu um erro ao criar a nota.",
		UpdateFailed:  "Erro ao atualizar nota: %s",
		UpdateNetwork: "Ocorreu um erro ao atualizar a nota.",
		DeleteFailed:  "Erro ao apagar nota: %s",
		DeleteNetwork: "Ocorreu um erro ao apagar a nota.",
		ConfirmDelete: "Você tem certeza que deseja apagar esta nota?",

		Copied:     "copiado!",
		CopyFailed: "falha ao copiar",
		Dismiss:    "ok",
		Yes:        "sim",
		No:         "não",
		HelpHint:   "ajuda",
	},
	"en": {
		UsernameLabel:     "username",
		UsernameRequired:  "Please enter a username.",
		LoginUnknownError: "An unknown error occurred.",
		LoginNetworkError: "Could not reach the server. Please try again later.",
		LoggingIn:         "logging in...",
		Welcome:           "Welcome, %s!",

		Loading:    "loading notes...",
		NoNotes:    "No notes found. Create one!",
		LoadFailed: "Could not load notes.",

		NewNote:          "New note",
		TitleLabel:       "title",
		DescriptionLabel: "description",
		TagsLabel:        "tags",
		NoTags:           "none",
		TitleRequired:    "Title is required.",
		Saving:           "saving...",

		Edit:   "edit",
		Delete: "delete",
		Save:   "save",
		Cancel: "cancel",

		CreateFailed:  "Error creating note: %s",
		CreateNetwork: "Something went wrong while creating the note.",
		UpdateFailed:  "Error updating note: %s",
		UpdateNetwork: "Something went wrong while updating the note.",
		DeleteFailed:  "Error deleting note: %s",
		DeleteNetwork: "Something went wrong while deleting the note.",
		ConfirmDelete: "Are you sure you want to delete this note?",

		Copied:     "copied!",
		CopyFailed: "copy failed",
		Dismiss:    "ok",
		Yes:        "yes",
		No:         "no",
		HelpHint:   "help",
	},
}

// catalogFor returns the catalog for lang, falling back to Portuguese.
func catalogFor(lang string) catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs["pt"]
}

// failure picks the alert text for a failed mutation: the server's detail
// when it rejected the request with one, the generic message otherwise.
func failure(format, generic string, err error) string {
	if d := client.Detail(err); d != "" {
		return fmt.Sprintf(format, d)
	}
	return generic
}
