package cache

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS membres (
	id            INTEGER PRIMARY KEY,
	nom           TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL,
	is_active     INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	archived_at   DATETIME,
	date_creation DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS projets (
	id          INTEGER PRIMARY KEY,
	nom         TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date_debut  DATETIME NOT NULL,
	date_fin    DATETIME NOT NULL,
	statut      TEXT NOT NULL,
	cree_par_id INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS projet_membres (
	projet_id INTEGER NOT NULL REFERENCES projets(id) ON DELETE CASCADE,
	membre_id INTEGER NOT NULL,
	PRIMARY KEY (projet_id, membre_id)
);

CREATE TABLE IF NOT EXISTS taches (
	id           INTEGER PRIMARY KEY,
	nom          TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	date_debut   DATETIME NOT NULL,
	date_fin     DATETIME NOT NULL,
	statut       TEXT NOT NULL,
	priorite     TEXT NOT NULL,
	projet_id    INTEGER NOT NULL,
	projet_nom   TEXT NOT NULL DEFAULT '',
	assignee_id  INTEGER,
	assignee_nom TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS commentaires (
	id         INTEGER PRIMARY KEY,
	contenu    TEXT NOT NULL,
	date       DATETIME NOT NULL,
	tache_id   INTEGER NOT NULL,
	auteur_id  INTEGER NOT NULL,
	auteur_nom TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fichiers (
	id           INTEGER PRIMARY KEY,
	nom          TEXT NOT NULL,
	url          TEXT NOT NULL DEFAULT '',
	date_partage DATETIME NOT NULL,
	projet_id    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_taches_projet_id ON taches(projet_id);
CREATE INDEX IF NOT EXISTS idx_taches_statut ON taches(statut);
CREATE INDEX IF NOT EXISTS idx_taches_assignee_id ON taches(assignee_id);
CREATE INDEX IF NOT EXISTS idx_commentaires_tache_id ON commentaires(tache_id);
CREATE INDEX IF NOT EXISTS idx_fichiers_projet_id ON fichiers(projet_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_taches_date_fin ON taches(date_fin);
CREATE INDEX IF NOT EXISTS idx_membres_is_active ON membres(is_active);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
