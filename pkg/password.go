package pkg

import "golang.org/x/crypto/bcrypt"

// PasswordCost coste de bcrypt, igual al que usaban las contraseñas existentes
const PasswordCost = 10

// GeneratePassword devuelve el hash bcrypt (con sal aleatoria) de la contraseña
func GeneratePassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword comprueba la contraseña en texto plano contra el hash guardado
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
