package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session es la única capacidad con acceso al token bearer persistido.
// El adapter HTTP la recibe al construirse; el resto del código no la toca.
type Session interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// Memory guarda el token sólo en memoria (tests, hosts sin disco).
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory crea una sesión en memoria con un token inicial opcional.
func NewMemory(token string) *Memory {
	return &Memory{token: strings.TrimSpace(token)}
}

func (memory *Memory) Token() string {
	memory.mu.RLock()
	defer memory.mu.RUnlock()
	return memory.token
}

func (memory *Memory) SetToken(token string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	memory.token = strings.TrimSpace(token)
	return nil
}

func (memory *Memory) Clear() error {
	return memory.SetToken("")
}

// tokenFile es el formato en disco.
type tokenFile struct {
	Token string `json:"token"`
}

// File persiste el token en un archivo JSON bajo la clave fija "token".
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile crea una sesión respaldada por el archivo indicado.
// El archivo no tiene que existir: ausencia equivale a "sin token".
func NewFile(path string) *File {
	return &File{path: path}
}

// Token devuelve el token guardado o "" si no hay (o si el archivo está corrupto).
func (file *File) Token() string {
	file.mu.Lock()
	defer file.mu.Unlock()

	raw, err := os.ReadFile(file.path)
	if err != nil {
		return ""
	}
	var stored tokenFile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return ""
	}
	return strings.TrimSpace(stored.Token)
}

func (file *File) SetToken(token string) error {
	file.mu.Lock()
	defer file.mu.Unlock()

	token = strings.TrimSpace(token)
	if token == "" {
		return file.removeLocked()
	}

	if err := os.MkdirAll(filepath.Dir(file.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	return writeAtomic(file.path, raw)
}

// writeAtomic escribe en un temporal del mismo directorio y lo renombra encima
// de path: un corte a mitad de escritura deja el archivo anterior intacto.
// CreateTemp crea el archivo con permisos 0600.
func writeAtomic(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (file *File) Clear() error {
	file.mu.Lock()
	defer file.mu.Unlock()
	return file.removeLocked()
}

func (file *File) removeLocked() error {
	if err := os.Remove(file.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
