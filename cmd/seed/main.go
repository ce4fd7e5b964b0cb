package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ticketly/internal/events"
	"ticketly/internal/orders"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/tickets"
	"ticketly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Ticketly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"orders",
		"ticket_types",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	eventIDs, err := s.SeedEvents(userIDs)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	ticketTypeIDs, err := s.SeedTicketTypes(eventIDs)
	if err != nil {
		return fmt.Errorf("failed to seed ticket types: %w", err)
	}

	if err := s.SeedOrders(userIDs, eventIDs, ticketTypeIDs); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 admin and 2 organizers
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@ticketly.mx", users.RoleAdmin},
		{"organizer1", "Lucia", "Fernandez", "lucia@ticketly.mx", users.RoleOrganizer},
		{"organizer2", "Diego", "Ramirez", "diego@ticketly.mx", users.RoleOrganizer},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedEvents creates a set of published events across two organizers
func (s *Seeder) SeedEvents(userIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🎪 Seeding events...")

	eventIDs := make(map[string]uuid.UUID)
	now := time.Now()

	eventsData := []struct {
		key       string
		title     string
		category  string
		address   string
		startsAt  time.Time
		endsAt    time.Time
		capacity  int
		organizer string
	}{
		{"concierto", "Concierto de Verano", "Music", "Calle Sol 5, CDMX",
			now.AddDate(0, 0, 20).Truncate(time.Hour), now.AddDate(0, 0, 20).Truncate(time.Hour).Add(4 * time.Hour), 500, "organizer1"},
		{"feria", "Feria del Libro", "Culture", "Av Reforma 100, CDMX",
			now.AddDate(0, 0, 35).Truncate(time.Hour), now.AddDate(0, 0, 37).Truncate(time.Hour), 2000, "organizer1"},
		{"expo", "Expo Tecnologia", "Technology", "Centro Banamex, CDMX",
			now.AddDate(0, 0, 50).Truncate(time.Hour), now.AddDate(0, 0, 51).Truncate(time.Hour), 1200, "organizer2"},
	}

	for _, eventData := range eventsData {
		startsAt := eventData.startsAt
		endsAt := eventData.endsAt
		event := events.Event{
			ID:          uuid.New(),
			Title:       eventData.title,
			Description: fmt.Sprintf("%s en %s", eventData.title, eventData.address),
			Category:    eventData.category,
			Address:     eventData.address,
			StartsAt:    &startsAt,
			EndsAt:      &endsAt,
			Capacity:    eventData.capacity,
			Status:      events.StatusPublished,
			OrganizerID: userIDs[eventData.organizer],
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return nil, fmt.Errorf("failed to create event %s: %w", event.Title, err)
		}

		eventIDs[eventData.key] = event.ID
		fmt.Printf("    ✅ Created event: %s (%s)\n", event.Title, event.Address)
	}

	return eventIDs, nil
}

// SeedTicketTypes creates General/VIP tiers for each event
func (s *Seeder) SeedTicketTypes(eventIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🎟️ Seeding ticket types...")

	ticketTypeIDs := make(map[string]uuid.UUID)

	ticketTypesData := []struct {
		key   string
		event string
		name  string
		price float64
		quota int
	}{
		{"concierto-general", "concierto", "General", 350, 400},
		{"concierto-vip", "concierto", "VIP", 900, 100},
		{"feria-general", "feria", "General", 80, 2000},
		{"expo-general", "expo", "General", 250, 1000},
		{"expo-vip", "expo", "VIP", 600, 200},
	}

	for _, ticketTypeData := range ticketTypesData {
		ticketType := tickets.TicketType{
			ID:        uuid.New(),
			EventID:   eventIDs[ticketTypeData.event],
			Name:      ticketTypeData.name,
			Price:     ticketTypeData.price,
			Quota:     ticketTypeData.quota,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&ticketType).Error; err != nil {
			return nil, fmt.Errorf("failed to create ticket type %s: %w", ticketTypeData.key, err)
		}

		ticketTypeIDs[ticketTypeData.key] = ticketType.ID
		fmt.Printf("    ✅ Created ticket type: %s / %s\n", ticketTypeData.event, ticketType.Name)
	}

	return ticketTypeIDs, nil
}

// SeedOrders creates a spread of orders over the past 90 days so the
// dashboards have something to chart, mixing payment statuses and
// leaving some orders without a ticket type.
func (s *Seeder) SeedOrders(userIDs map[string]uuid.UUID, eventIDs map[string]uuid.UUID, ticketTypeIDs map[string]uuid.UUID) error {
	fmt.Println("  🧾 Seeding orders...")

	now := time.Now()

	buyers := []struct {
		id   uuid.UUID
		name string
	}{
		{uuid.New(), "Ana Torres"},
		{uuid.New(), "Carlos Mendez"},
		{uuid.New(), "Sofia Herrera"},
	}

	ordersData := []struct {
		event      string
		ticketType string
		label      string
		buyer      int
		quantity   int
		totalPrice float64
		status     orders.PaymentStatus
		daysAgo    int
	}{
		{"concierto", "concierto-general", "General", 0, 2, 700, orders.PaymentPaid, 2},
		{"concierto", "concierto-vip", "VIP", 1, 1, 900, orders.PaymentPaid, 3},
		{"concierto", "concierto-general", "General", 2, 4, 1400, orders.PaymentPaid, 10},
		{"concierto", "concierto-general", "General", 0, 1, 350, orders.PaymentPending, 1},
		{"feria", "feria-general", "General", 1, 3, 240, orders.PaymentPaid, 5},
		{"feria", "", "", 2, 2, 160, orders.PaymentPaid, 25},
		{"feria", "feria-general", "General", 0, 1, 80, orders.PaymentFailed, 6},
		{"expo", "expo-general", "General", 1, 2, 500, orders.PaymentPaid, 40},
		{"expo", "expo-vip", "VIP", 2, 1, 600, orders.PaymentPaid, 60},
		{"expo", "expo-general", "General", 0, 3, 750, orders.PaymentRefunded, 15},
	}

	for i, orderData := range ordersData {
		var ticketTypeID *uuid.UUID
		if orderData.ticketType != "" {
			id := ticketTypeIDs[orderData.ticketType]
			ticketTypeID = &id
		}

		buyer := buyers[orderData.buyer]
		order := orders.Order{
			ID:            uuid.New(),
			UserID:        buyer.id,
			UserName:      buyer.name,
			EventID:       eventIDs[orderData.event],
			TicketTypeID:  ticketTypeID,
			TicketType:    orderData.label,
			Quantity:      orderData.quantity,
			TotalPrice:    orderData.totalPrice,
			PaymentStatus: orderData.status,
			OrderedAt:     now.AddDate(0, 0, -orderData.daysAgo),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order %d: %w", i, err)
		}
	}

	fmt.Printf("    ✅ Created %d orders\n", len(ordersData))
	return nil
}
