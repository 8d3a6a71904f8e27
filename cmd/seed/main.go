package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds demo departments, accounts and questions for local development.
// Safe to run repeatedly: it skips anything that already exists.

type seedUser struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EmployeeID string
	Department string
}

type seedQuestion struct {
	Text       string
	Department string
	Order      int
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "password")
	dbName := getEnv("DB_NAME", "frontline_rating_db")
	dbSSLMode := getEnv("DB_SSL_MODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}
	log.Println("✅ Successfully connected to database")

	if err := seedDepartments(db); err != nil {
		log.Fatal("Failed to seed departments:", err)
	}
	if err := seedUsers(db); err != nil {
		log.Fatal("Failed to seed users:", err)
	}
	if err := seedQuestions(db); err != nil {
		log.Fatal("Failed to seed questions:", err)
	}
	if err := seedRatings(db); err != nil {
		log.Fatal("Failed to seed ratings:", err)
	}

	log.Println("🎉 Seeding complete")
}

func seedDepartments(db *sql.DB) error {
	departments := []struct {
		Name        string
		Description string
	}{
		{"Customer Service", "Front desk and call centre customer support"},
		{"Claims", "Insurance claims intake and settlement"},
		{"Sales", "New business and policy renewals"},
		{"Underwriting", "Risk assessment and policy issuance"},
	}

	for _, dept := range departments {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1)", dept.Name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			log.Printf("⚠️  Department %q already exists, skipping", dept.Name)
			continue
		}

		_, err := db.Exec(
			"INSERT INTO departments (name, description, is_active, created_at, updated_at) VALUES ($1, $2, true, NOW(), NOW())",
			dept.Name, dept.Description,
		)
		if err != nil {
			return err
		}
		log.Printf("✅ Created department %q", dept.Name)
	}

	return nil
}

func seedUsers(db *sql.DB) error {
	users := []seedUser{
		{"System Admin", "admin@example.com", "admin12345", "ADMIN", "EMP-0001", ""},
		{"Clara Mensah", "clara.hod@example.com", "password123", "HOD", "EMP-0010", "Customer Service"},
		{"David Osei", "david.hod@example.com", "password123", "HOD", "EMP-0011", "Claims"},
		{"Ama Boateng", "ama.agent@example.com", "password123", "AGENT", "EMP-0100", "Customer Service"},
		{"Kwame Asante", "kwame.agent@example.com", "password123", "AGENT", "EMP-0101", "Customer Service"},
		{"Efua Darko", "efua.agent@example.com", "password123", "AGENT", "EMP-0102", "Claims"},
	}

	for _, u := range users {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", u.Email).Scan(&exists); err != nil {
			return err
		}
		if exists {
			log.Printf("⚠️  User %s already exists, skipping", u.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		var departmentID sql.NullInt64
		if u.Department != "" {
			if err := db.QueryRow("SELECT id FROM departments WHERE name = $1", u.Department).Scan(&departmentID.Int64); err != nil {
				return fmt.Errorf("department %q not found for %s: %w", u.Department, u.Email, err)
			}
			departmentID.Valid = true
		}

		_, err = db.Exec(
			`INSERT INTO users (name, email, password_hash, employee_id, role, status, department_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, 'APPROVED', $6, NOW(), NOW())`,
			u.Name, u.Email, string(hash), u.EmployeeID, u.Role, departmentID,
		)
		if err != nil {
			return err
		}
		log.Printf("✅ Created %s user %s", u.Role, u.Email)
	}

	return nil
}

func seedQuestions(db *sql.DB) error {
	questions := []seedQuestion{
		{"How satisfied were you with the agent's professionalism?", "Customer Service", 1},
		{"How quickly was your issue resolved?", "Customer Service", 2},
		{"How clearly did the agent explain the next steps?", "Customer Service", 3},
		{"How satisfied were you with the claims process?", "Claims", 1},
		{"How well were you kept informed about your claim status?", "Claims", 2},
		{"How knowledgeable was the sales agent about our products?", "Sales", 1},
		{"How satisfied were you with the policy options offered?", "Sales", 2},
	}

	for _, q := range questions {
		var departmentID int64
		if err := db.QueryRow("SELECT id FROM departments WHERE name = $1", q.Department).Scan(&departmentID); err != nil {
			return fmt.Errorf("department %q not found: %w", q.Department, err)
		}

		var exists bool
		if err := db.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM questions WHERE department_id = $1 AND question_text = $2)",
			departmentID, q.Text,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		_, err := db.Exec(
			`INSERT INTO questions (question_text, department_id, display_order, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, true, NOW(), NOW())`,
			q.Text, departmentID, q.Order,
		)
		if err != nil {
			return err
		}
		log.Printf("✅ Created question for %s: %q", q.Department, q.Text)
	}

	return nil
}

// seedRatings inserts a handful of demo ratings against each seeded agent,
// with one response per active question of the agent's department. Skipped
// entirely when any rating already exists.
func seedRatings(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Printf("⚠️  Ratings already exist (%d found), skipping", count)
		return nil
	}

	rows, err := db.Query("SELECT id, department_id FROM users WHERE role = 'AGENT' AND department_id IS NOT NULL")
	if err != nil {
		return err
	}
	defer rows.Close()

	type agentRow struct {
		ID           int64
		DepartmentID int64
	}
	var agents []agentRow
	for rows.Next() {
		var a agentRow
		if err := rows.Scan(&a.ID, &a.DepartmentID); err != nil {
			return err
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	samples := []struct {
		CustomerName string
		Scores       []int
		IsComplaint  bool
		Feedback     string
	}{
		{"Yaw Mensah", []int{5, 4, 5}, false, "Very helpful and quick."},
		{"Akosua Owusu", []int{4, 4, 3}, false, ""},
		{"Kojo Appiah", []int{2, 1, 2}, true, "Waited over an hour and got conflicting answers."},
	}

	for _, agent := range agents {
		qRows, err := db.Query(
			"SELECT id FROM questions WHERE department_id = $1 AND is_active = true ORDER BY display_order",
			agent.DepartmentID,
		)
		if err != nil {
			return err
		}
		var questionIDs []int64
		for qRows.Next() {
			var id int64
			if err := qRows.Scan(&id); err != nil {
				qRows.Close()
				return err
			}
			questionIDs = append(questionIDs, id)
		}
		qRows.Close()
		if err := qRows.Err(); err != nil {
			return err
		}
		if len(questionIDs) == 0 {
			continue
		}

		for _, s := range samples {
			var complaintStatus sql.NullString
			if s.IsComplaint {
				complaintStatus = sql.NullString{String: "OPEN", Valid: true}
			}

			var ratingID int64
			err := db.QueryRow(
				`INSERT INTO ratings (agent_id, department_id, customer_name, is_anonymous, is_complaint,
				                      complaint_status, feedback_text, created_at)
				 VALUES ($1, $2, $3, false, $4, $5, $6, NOW()) RETURNING id`,
				agent.ID, agent.DepartmentID, s.CustomerName, s.IsComplaint, complaintStatus, s.Feedback,
			).Scan(&ratingID)
			if err != nil {
				return err
			}

			for i, questionID := range questionIDs {
				score := s.Scores[i%len(s.Scores)]
				if _, err := db.Exec(
					"INSERT INTO responses (rating_id, question_id, score, created_at) VALUES ($1, $2, $3, NOW())",
					ratingID, questionID, score,
				); err != nil {
					return err
				}
			}
		}
		log.Printf("✅ Created %d demo ratings for agent %d", len(samples), agent.ID)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
