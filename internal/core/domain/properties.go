package domain

// Property keys understood by the generator.
const (
	PropDialect                = "hibernate.dialect"
	PropShowSQL                = "hibernate.show_sql"
	PropFormatSQL              = "hibernate.format_sql"
	PropDelimiter              = "hibernate.hbm2ddl.delimiter"
	PropCreateNamespaces       = "hibernate.hbm2ddl.create_namespaces"
	PropImplicitNamingStrategy = "hibernate.implicit_naming_strategy"
	PropPhysicalNamingStrategy = "hibernate.physical_naming_strategy"

	PropDriver   = "hibernate.connection.driver_class"
	PropURL      = "hibernate.connection.url"
	PropUsername = "hibernate.connection.username"
	PropPassword = "hibernate.connection.password"

	PropJPADriver   = "javax.persistence.jdbc.driver"
	PropJPAURL      = "javax.persistence.jdbc.url"
	PropJPAUser     = "javax.persistence.jdbc.user"
	PropJPAPassword = "javax.persistence.jdbc.password"

	PropExecute = "hibernate.schema.execute"
	PropSkipped = "hibernate.schema.skipped"
	PropScript  = "hibernate.schema.script"
	PropGoal    = "hibernate.schema.goal"

	PropScanClasses      = "hibernate.schema.scan.classes"
	PropScanTestClasses  = "hibernate.schema.scan.test_classes"
	PropScanDependencies = "hibernate.schema.scan.dependencies"

	PropOutputDirectory     = "project.build.outputDirectory"
	PropTestOutputDirectory = "project.build.testOutputDirectory"
)

// DefaultDelimiter separates statements in a generated script.
const DefaultDelimiter = ";"

// PropertyAlias maps a JPA standard key onto the equivalent native key.
type PropertyAlias struct {
	Alias  string
	Target string
}

// PropertyAliases lists the keys folded into their native equivalents during merging.
var PropertyAliases = []PropertyAlias{
	{Alias: PropJPADriver, Target: PropDriver},
	{Alias: PropJPAURL, Target: PropURL},
	{Alias: PropJPAUser, Target: PropUsername},
	{Alias: PropJPAPassword, Target: PropPassword},
}

// UntrackedProperties are observed for display but never force regeneration.
var UntrackedProperties = map[string]bool{
	PropShowSQL: true,
}
