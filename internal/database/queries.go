package database

// Menu catalog queries
const (
	ListCategoriesSQL = `
		SELECT id, name, display_order, active, created_at
		FROM menu_categories
		WHERE active
		ORDER BY display_order ASC`

	InsertCategorySQL = `
		INSERT INTO menu_categories (name, display_order, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	GetCategorySQL = `
		SELECT id, name, display_order, active, created_at
		FROM menu_categories WHERE id = $1`

	UpdateCategorySQL = `
		UPDATE menu_categories SET
			name = COALESCE($2, name),
			display_order = COALESCE($3, display_order),
			active = COALESCE($4, active)
		WHERE id = $1
		RETURNING id, name, display_order, active, created_at`

	DeleteCategorySQL = `DELETE FROM menu_categories WHERE id = $1`

	GetMenuItemSQL = `
		SELECT i.id, i.category_id, c.name, i.name, i.description, i.price,
			   i.image_url, i.availability, i.popularity, i.created_at, i.updated_at
		FROM menu_items i
		JOIN menu_categories c ON c.id = i.category_id
		WHERE i.id = $1`

	InsertMenuItemSQL = `
		INSERT INTO menu_items (category_id, name, description, price, availability)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, popularity, created_at, updated_at`

	UpdateMenuItemSQL = `
		UPDATE menu_items SET
			category_id = COALESCE($2, category_id),
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			price = COALESCE($5, price),
			availability = COALESCE($6, availability),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	SetMenuItemImageSQL = `
		UPDATE menu_items SET image_url = $2, updated_at = NOW()
		WHERE id = $1`

	DeleteMenuItemSQL = `DELETE FROM menu_items WHERE id = $1`

	// In-database arithmetic so concurrent orders never lose increments.
	BumpPopularitySQL = `
		UPDATE menu_items SET popularity = popularity + $2, updated_at = NOW()
		WHERE id = $1 AND availability`
)

// Table registry queries
const (
	InsertTableSQL = `
		INSERT INTO tables (number, qr_slug, status)
		VALUES ($1, $2, 'available')
		RETURNING id, created_at, updated_at`

	ListTablesSQL = `
		SELECT id, number, qr_slug, status, created_at, updated_at
		FROM tables
		ORDER BY number ASC`

	GetTableSQL = `
		SELECT id, number, qr_slug, status, created_at, updated_at
		FROM tables WHERE id = $1`

	GetTableByNumberSQL = `
		SELECT id, number, qr_slug, status, created_at, updated_at
		FROM tables WHERE number = $1`

	GetTableBySlugSQL = `
		SELECT id, number, qr_slug, status, created_at, updated_at
		FROM tables WHERE qr_slug = $1`

	UpdateTableSQL = `
		UPDATE tables SET
			number = COALESCE($2, number),
			status = COALESCE($3, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, number, qr_slug, status, created_at, updated_at`

	SetTableStatusSQL = `
		UPDATE tables SET status = $2, updated_at = NOW()
		WHERE id = $1`

	DeleteTableSQL = `DELETE FROM tables WHERE id = $1`
)

// Order engine queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, table_id, customer_id, session_token, status, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, name, price, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6)`

	GetOrderSQL = `
		SELECT o.id, o.table_id, t.number, o.customer_id, u.name, o.session_token,
			   o.status, o.subtotal, o.tax, o.total, o.created_at, o.updated_at
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		LEFT JOIN users u ON u.id = o.customer_id
		WHERE o.id = $1`

	ListOrderItemsSQL = `
		SELECT id, order_id, menu_item_id, name, price, quantity, note
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY id ASC`

	ListOrdersByCustomerSQL = `
		SELECT o.id, o.table_id, t.number, o.customer_id, u.name, o.session_token,
			   o.status, o.subtotal, o.tax, o.total, o.created_at, o.updated_at
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		LEFT JOIN users u ON u.id = o.customer_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING table_id`

	CountActiveOrdersSQL = `
		SELECT COUNT(*) FROM orders
		WHERE table_id = $1 AND status IN ('placed', 'preparing', 'ready')`
)

// Stats rollup queries, all over today's window
const (
	OrderStatsSQL = `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1
		GROUP BY status`

	CategoryRevenueSQL = `
		SELECT c.name,
			   COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue,
			   COALESCE(SUM(oi.quantity), 0) AS items_sold
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		JOIN menu_categories c ON c.id = mi.category_id
		WHERE o.created_at >= $1 AND o.status <> 'canceled'
		GROUP BY c.name
		ORDER BY revenue DESC`

	TopItemsSQL = `
		SELECT oi.menu_item_id,
			   MIN(oi.name) AS name,
			   SUM(oi.quantity) AS total_quantity,
			   SUM(oi.price * oi.quantity) AS revenue
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.created_at >= $1 AND o.status <> 'canceled'
		GROUP BY oi.menu_item_id
		ORDER BY total_quantity DESC
		LIMIT $2`
)

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	GetUserByEmailSQL = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE email = $1`

	GetUserByIDSQL = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE id = $1`
)
