package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    DEFINE TABLE IF NOT EXISTS event SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS title ON event TYPE string;
    DEFINE FIELD IF NOT EXISTS url ON event TYPE string;
    DEFINE FIELD IF NOT EXISTS starts_at ON event TYPE datetime;
    DEFINE FIELD IF NOT EXISTS ends_at ON event TYPE datetime;
    DEFINE FIELD IF NOT EXISTS status ON event TYPE string
        ASSERT $value IN ["pending", "approved", "rejected"];
    DEFINE FIELD IF NOT EXISTS materials ON event FLEXIBLE TYPE array DEFAULT [];
    DEFINE FIELD IF NOT EXISTS created_at ON event TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated_at ON event TYPE datetime DEFAULT time::now();

    -- Dedup is by exact canonical URL; the unique index backs the exists check.
    DEFINE INDEX IF NOT EXISTS event_url ON event FIELDS url UNIQUE;
    DEFINE INDEX IF NOT EXISTS event_status ON event FIELDS status;
`
