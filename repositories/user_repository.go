package repositories

import (
	"context"
	"time"

	"marketplace/config"
	"marketplace/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		user.Email, user.Password, user.Role, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE email = $1`

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE id = $1`

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context, page, limit int) ([]models.UserWithProfile, int, error) {
	var total int
	if err := config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `
		SELECT u.id, u.email, u.role, COALESCE(p.full_name, ''), COALESCE(p.phone, ''),
		       COALESCE(p.address, ''), COALESCE(p.photo_url, ''), u.created_at
		FROM users u
		LEFT JOIN user_profiles p ON u.id = p.user_id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := config.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.UserWithProfile{}
	for rows.Next() {
		var u models.UserWithProfile
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.FullName, &u.Phone,
			&u.Address, &u.PhotoURL, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) GetUserWithProfile(ctx context.Context, userID int) (*models.UserWithProfile, error) {
	query := `
		SELECT u.id, u.email, u.role, COALESCE(p.full_name, ''), COALESCE(p.phone, ''),
		       COALESCE(p.address, ''), COALESCE(p.photo_url, ''), u.created_at
		FROM users u
		LEFT JOIN user_profiles p ON u.id = p.user_id
		WHERE u.id = $1
	`
	u := &models.UserWithProfile{}
	err := config.DB.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Email, &u.Role, &u.FullName, &u.Phone, &u.Address, &u.PhotoURL, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, full_name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		profile.UserID, profile.FullName, profile.Phone, now, now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `SELECT id, user_id, COALESCE(full_name, ''), COALESCE(phone, ''),
	          COALESCE(address, ''), COALESCE(photo_url, ''), created_at, updated_at
	          FROM user_profiles WHERE user_id = $1`

	p := &models.UserProfile{}
	err := config.DB.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Address, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `UPDATE user_profiles SET full_name = $1, phone = $2, address = $3,
	          photo_url = $4, updated_at = $5 WHERE user_id = $6`
	_, err := config.DB.Exec(ctx, query,
		profile.FullName, profile.Phone, profile.Address, profile.PhotoURL,
		time.Now(), profile.UserID,
	)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashedPassword string) error {
	_, err := config.DB.Exec(ctx, `UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`,
		hashedPassword, time.Now(), userID)
	return err
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := config.DB.Exec(ctx, `UPDATE users SET email = $1, role = $2, updated_at = $3 WHERE id = $4`,
		user.Email, user.Role, time.Now(), user.ID)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, userID int) error {
	if _, err := config.DB.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	_, err := config.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	return err
}
