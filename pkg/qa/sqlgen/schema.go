package sqlgen

// schemaDescription is the curated, hand-maintained guidance handed to the
// model alongside the live schema snapshot. Column notes and canonical
// values here are authoritative; the live snapshot only proves existence.
const schemaDescription = `
Database schema (schema = ic)

Table: workflows
- workflow_id (TEXT, PK)
- readable_id (TEXT)            -- canonical id shown to users, e.g. IC-1234
- ironclad_id (TEXT)
- title (TEXT)
- template (TEXT)
- status (TEXT)                 -- 'completed' (finished) or 'active' (in progress); never 'In Progress'
- step (TEXT)                   -- in-progress only; exact values 'Create', 'Review', 'Sign', 'Archive'
- is_complete (BOOLEAN)
- is_cancelled (BOOLEAN)
- created_at (TIMESTAMPTZ)
- last_updated_at (TIMESTAMPTZ)
- record_type (TEXT)            -- contract type (NDA, MSA, SOW, ...); use this, not document_type
- legal_entity (TEXT)           -- wrap with COALESCE(legal_entity, 'Unspecified Legal Entity') when grouping
- department (TEXT)
- owner_name (TEXT)
- paper_source (TEXT)
- document_type (TEXT)
- agreement_date (TIMESTAMPTZ)
- execution_date (TIMESTAMPTZ)  -- use for executed/signed filters and year breakdowns
- expiration_date (TIMESTAMPTZ) -- use for expiry questions
- po_number (TEXT)
- requisition_number (TEXT)
- contract_value_amount (NUMERIC)   -- "spend"/"total spend" means this column only
- contract_value_currency (TEXT)
- estimated_cost_amount (NUMERIC)   -- "estimated cost" means this column only; never COALESCE with actuals
- estimated_cost_currency (TEXT)
- counterparty_name (TEXT, nullable)
- attributes (JSONB)            -- UI metadata; priority via LOWER(attributes->>'priority'):
                                   'high priority' | 'medium/low priority' | NULL

Department normalization (always apply when grouping or displaying departments):
  COALESCE(dm.canonical_value, c1.canonical_value, c2.canonical_value, 'Department not specified') AS department_clean
  LEFT JOIN ic.department_map dm       ON UPPER(TRIM(w.department)) = UPPER(dm.raw_value)
  LEFT JOIN ic.department_canonical c1 ON UPPER(TRIM(w.department)) = UPPER(c1.canonical_value)
  LEFT JOIN ic.department_canonical c2 ON UPPER(TRIM(w.owner_name)) = UPPER(c2.canonical_value)
  GROUP BY department_clean

Vendor / counterparty filter order:
  1) w.counterparty_name ILIKE '%<vendor>%'
  2) OR COALESCE(w.legal_entity,'') ILIKE '%<vendor>%'
  3) OR w.title ILIKE '%<vendor>%'
  When counting, include up to five sample ids:
    ARRAY(SELECT w.readable_id FROM ic.workflows w WHERE <same predicate> ORDER BY w.readable_id LIMIT 5) AS example_ids

Quarter logic (calendar-aligned, anchored to CURRENT_DATE; never "last 3 months"):
- last quarter:  execution_date >= date_trunc('quarter', CURRENT_DATE) - INTERVAL '3 months'
                 AND execution_date <  date_trunc('quarter', CURRENT_DATE)
- this quarter:  execution_date >= date_trunc('quarter', CURRENT_DATE)
                 AND execution_date <  date_trunc('quarter', CURRENT_DATE) + INTERVAL '3 months'
- next quarter:  execution_date >= date_trunc('quarter', CURRENT_DATE) + INTERVAL '3 months'
                 AND execution_date <  date_trunc('quarter', CURRENT_DATE) + INTERVAL '6 months'
- explicit Qn YYYY: EXTRACT(YEAR FROM execution_date)=YYYY AND EXTRACT(QUARTER FROM execution_date)=n

Table: approvals
- workflow_id, role_id, status ('approved', 'pending', ...)
- Resolve the approver via ic.role_assignees ON workflow_id + role_id (user_name, email).
- "How many contracts has NAME approved" -> ra.user_name ILIKE '%NAME%' AND a.status='approved'

Table: roles          (workflow_id, role_id, display_name)
Table: role_assignees (workflow_id, role_id, user_id, user_name, email)
Table: participants   (workflow_id, user_id, email)

Table: documents
- doc_id (BIGSERIAL, PK), workflow_id, doc_type, version, version_number,
  filename, storage_key, download_path, last_modified_at, last_modified_author (JSONB)

Table: comments
- comment_id (TEXT, PK), workflow_id, author (JSONB), author_email, author_user_id,
  ts (TIMESTAMPTZ), message, is_external (BOOLEAN)
- Match people by email first, else LOWER(author->>'displayName') LIKE LOWER('<prefix>%').
- Comment spans: MIN(ts)/MAX(ts) per workflow, HAVING COUNT(*) > 1 to avoid zero spans.

Table: clauses
- workflow_id, clause_name (TEXT, canonical slug like clause_termination-for-convenience), clause_value (JSONB)
- Any question mentioning "clause"/"clauses" is answered here. Counts use COUNT(DISTINCT workflow_id);
  listings join back to ic.workflows for readable_id/title.

Imported contracts:
- Identified by attributes ? 'importId'. Never guess from title or record_type.
- Imported date logic uses (attributes->'smartImportProperty_predictionDate'->>'value')::timestamptz,
  not created_at. Repeat the DATE_TRUNC expression in WHERE; never filter via a HAVING alias.

Table: contract_texts
- readable_id (TEXT, PK), workflow_id, title, text, text_sha256, token_count, source_status, updated_at

Table: contract_chunks
- readable_id, workflow_id, chunk_id (BIGINT, 0..N-1 per document), start_char, end_char,
  chunk_text, embedding (vector(1536), cosine), text_sha256
- GIN trigram index over chunk_text; IVFFLAT vector index over embedding.
`
