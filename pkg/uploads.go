package pkg

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ProfileImageField = "profileImage"

var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ProfileImageName genera el nombre con el que se guarda una imagen subida:
// <nombre original>_<uuid><extensión>
func ProfileImageName(original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("extensión de imagen no permitida: %q", ext)
	}

	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' || r == '.' {
			return '_'
		}
		return r
	}, base)
	if base == "" {
		base = "profile"
	}

	return fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext), nil
}

// SaveProfileImage guarda la imagen de perfil en el directorio de subidas.
// Devuelve nil si la petición no trae archivo.
func SaveProfileImage(c *fiber.Ctx, dir string) (*string, error) {
	file, err := c.FormFile(ProfileImageField)
	if err != nil {
		// sin multipart o sin el campo: no hay imagen
		return nil, nil
	}

	return saveUploadedFile(c, file, dir)
}

func saveUploadedFile(c *fiber.Ctx, file *multipart.FileHeader, dir string) (*string, error) {
	name, err := ProfileImageName(file.Filename)
	if err != nil {
		return nil, NewValidationError("Formato de imagen no permitido")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creando directorio de subidas: %w", err)
	}

	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return nil, fmt.Errorf("error guardando la imagen: %w", err)
	}

	return &name, nil
}

// RemoveProfileImage borra una imagen de perfil si existe. Un archivo que ya
// no está no se considera error.
func RemoveProfileImage(dir string, name *string) error {
	if name == nil || *name == "" {
		return nil
	}

	path := filepath.Join(dir, filepath.Base(*name))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("error eliminando la imagen %s: %w", path, err)
	}
	return nil
}
