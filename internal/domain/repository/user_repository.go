package repository

import "github.com/alluma/crm-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) (int64, error)
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id int64) error
	// List devuelve todos los usuarios; la tabla es chica y el resolver de
	// jerarquía la recorre completa en cada resolución.
	List() ([]*entity.User, error)
	// ListActiveSellers devuelve los vendedores activos ordenados por id
	// ascendente (orden estable para la rotación round-robin).
	ListActiveSellers() ([]*entity.User, error)
}
