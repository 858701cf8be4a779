package storepg

const (
	// first row of the table in engine order matching an optional predicate
	firstMatchPredicate = `ctid = (select ctid from %s%s limit 1 for update)`
)

const (
	PaySystemsIncomeQuery = `
	select
	    ps.id,
	    ps.name,
	    count(*) as order_count,
	    sum(o.sum) as total_sum
	from
	    tbl_order o
	    inner join tbl_pay_system ps on o.pay_system_id = ps.id
	where
	    o.sum between $1::float8 and $2::float8
	group by
	    ps.id,
	    ps.name
	order by
	    ps.id
`
	CompanyOrdersQuery = `
	select
	    c.id,
	    c.name,
	    count(*) as order_count
	from
	    tbl_order o
	    inner join tbl_company c on o.company_id = c.id
	where
	    o.date between $1::date and $2::date
	group by
	    c.id,
	    c.name
	order by
	    c.id
`
	TopOrdersQuery = `
	select
	    o.id as order_id,
	    o.sum
	from
	    tbl_order o
	    inner join tbl_company c on o.company_id = c.id
	where
	    c.name = $1
	order by
	    o.sum desc
	limit $2
`
)
