package schema

// DefaultArchetypes is the archetype set a new project starts with.
var DefaultArchetypes = []NodeArchetype{
	{
		Type:            "topic",
		Nature:          NatureChild,
		Description:     "Topic or sub-topic.",
		Color:           "#334155",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"topic", "repo"},
		AllowedSubNodes: []string{"article", "paper", "taxonomy", "conceptualframework", "concept", "mentalmodel", "principle", "law", "controversy", "misconception", "methodology", "source"},
		FlowX:           AxisFree,
		FlowY:           AxisNegative,
		FlowZ:           AxisPositive,
	},
	{
		Type:            "domain",
		Nature:          NatureChild,
		Description:     "Broad knowledge territory or industry.",
		Color:           "#4f46e5",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"branch", "topic", "organization_entity", "field"},
		AllowedSubNodes: []string{"article", "paper", "taxonomy", "conceptualframework", "concept", "mentalmodel", "principle", "law", "controversy", "misconception", "methodology"},
		FlowX:           AxisFree,
		FlowY:           AxisPositive,
		FlowZ:           AxisNeutral,
	},
	{
		Type:            "field",
		Nature:          NatureChild,
		Description:     "Specific area of study within a domain.",
		Color:           "#0ea5e9",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"field_speciality"},
		AllowedSubNodes: []string{"taxonomy", "conceptualframework", "concept", "mentalmodel", "principle", "law", "controversy", "misconception", "methodology"},
		FlowX:           AxisFree,
		FlowY:           AxisPositive,
		FlowZ:           AxisNeutral,
	},
	{
		Type:            "field_speciality",
		Nature:          NatureChild,
		Description:     "Specialized niche within a field.",
		Color:           "#06b6d4",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"domain", "topic", "organization_entity"},
		AllowedSubNodes: []string{"article", "paper", "taxonomy", "conceptualframework", "concept", "mentalmodel", "principle", "law", "controversy", "misconception", "methodology"},
		FlowX:           AxisFree,
		FlowY:           AxisPositive,
		FlowZ:           AxisNeutral,
	},
	{
		Type:            "branch",
		Nature:          NatureChild,
		Description:     "Divergent path or sub-division.",
		Color:           "#f59e0b",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"topic", "organization_entity"},
		AllowedSubNodes: []string{"article", "paper", "taxonomy", "conceptualframework", "concept", "mentalmodel", "principle", "law", "controversy", "misconception", "methodology"},
		FlowX:           AxisFree,
		FlowY:           AxisNegative,
		FlowZ:           AxisPositive,
	},
	{
		Type:            "organization_entity",
		Nature:          NatureChild,
		Description:     "Company, institution, or group.",
		Color:           "#7c3aed",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"organization_entity"},
		AllowedSubNodes: []string{"article", "documentation", "source"},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNeutral,
	},
	{
		Type:            "repo",
		Nature:          NatureChild,
		Description:     "Repository or codebase container.",
		Color:           "#334155",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{"folder", "file", "documentation", "article", "paper"},
		FlowX:           AxisFree,
		FlowY:           AxisNegative,
		FlowZ:           AxisPositive,
	},
	{
		Type:            "article",
		Nature:          NatureChild,
		Description:     "Detailed written content and structural container.",
		Color:           "#38bdf8",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"topic", "concept"},
		AllowedSubNodes: []string{"source", "file"},
		FlowX:           AxisFree,
		FlowY:           AxisNegative,
		FlowZ:           AxisPositive,
	},
	{
		Type:            "paper",
		Nature:          NatureChild,
		Description:     "Academic or technical paper.",
		Color:           "#94a3b8",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"topic", "concept"},
		AllowedSubNodes: []string{"taxonomy", "concept", "principle", "methodology", "source"},
		FlowX:           AxisFree,
		FlowY:           AxisNegative,
		FlowZ:           AxisPositive,
	},
	{
		Type:            "taxonomy",
		Nature:          NatureSub,
		Description:     "Classification scheme or hierarchy.",
		Color:           "#a78bfa",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "conceptualframework",
		Nature:          NatureSub,
		Description:     "Analytical tool or model.",
		Color:           "#c084fc",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{"concept", "principle", "methodology"},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "concept",
		Nature:          NatureSub,
		Description:     "Abstract idea or general notion.",
		Color:           "#d8b4fe",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{"misconception", "controversy", "principle"},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "mentalmodel",
		Nature:          NatureSub,
		Description:     "Explanation of thought process.",
		Color:           "#e879f9",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{"concept"},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "principle",
		Nature:          NatureSub,
		Description:     "Fundamental truth or proposition.",
		Color:           "#f472b6",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "law",
		Nature:          NatureSub,
		Description:     "System of rules or scientific law.",
		Color:           "#fb7185",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "controversy",
		Nature:          NatureSub,
		Description:     "Public disagreement or debate.",
		Color:           "#ef4444",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "misconception",
		Nature:          NatureSub,
		Description:     "Mistaken thought or idea.",
		Color:           "#f87171",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "methodology",
		Nature:          NatureSub,
		Description:     "System of methods in proper field.",
		Color:           "#fb923c",
		DefaultEdge:     "DEPENDS_ON",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "source",
		Nature:          NatureSub,
		Description:     "Origin of cited material.",
		Color:           "#64748b",
		DefaultEdge:     "RELATED_TO",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "folder",
		Nature:          NatureSub,
		Description:     "Directory within a repository.",
		Color:           "#475569",
		DefaultEdge:     "CONTAINS",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{"folder", "file"},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "file",
		Nature:          NatureSub,
		Description:     "Single file within a repository.",
		Color:           "#52525b",
		DefaultEdge:     "CONTAINS",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
	{
		Type:            "documentation",
		Nature:          NatureSub,
		Description:     "Reference documentation.",
		Color:           "#84cc16",
		DefaultEdge:     "DESCRIBES",
		AllowedChildren: []string{},
		AllowedSubNodes: []string{},
		FlowX:           AxisFree,
		FlowY:           AxisFree,
		FlowZ:           AxisNegative,
	},
}

// DefaultTaxonomies is the edge taxonomy set a new project starts with.
var DefaultTaxonomies = []EdgeTaxonomy{
	{
		Type:            "RELATIONAL",
		Nature:          EdgeNatureChild,
		SourceType:      "PARENT_OF",
		DestinationType: "CHILD_OF",
		Description:     "Strict hierarchical parent-child relation.",
		Color:           "#6366f1",
	},
	{
		Type:            "RELATIONAL",
		Nature:          EdgeNatureChild,
		SourceType:      "GOVERNS",
		DestinationType: "SUBSIDIARY_OF",
		Description:     "Organizational hierarchy.",
		Color:           "#7c3aed",
	},
	{
		Type:            "RELATIONAL",
		Nature:          EdgeNatureChild,
		SourceType:      "ENCOMPASSES",
		DestinationType: "PUBLISHED_IN",
		Description:     "Knowledge domain containment.",
		Color:           "#0ea5e9",
	},
	{
		Type:            "DESCRIPTIVE",
		Nature:          EdgeNatureSub,
		SourceType:      "DEFINES",
		DestinationType: "DEFINED_BY",
		Description:     "Establishes a definition.",
		Color:           "#c084fc",
	},
	{
		Type:            "DESCRIPTIVE",
		Nature:          EdgeNatureSub,
		SourceType:      "DESCRIBES",
		DestinationType: "DESCRIBED_BY",
		Description:     "Provides description or context.",
		Color:           "#d8b4fe",
	},
	{
		Type:            "DESCRIPTIVE",
		Nature:          EdgeNatureSub,
		SourceType:      "EXPLAINS",
		DestinationType: "EXPLAINED_BY",
		Description:     "Elaborates on logic or reasoning.",
		Color:           "#e879f9",
	},
	{
		Type:            "DESCRIPTIVE",
		Nature:          EdgeNatureSub,
		SourceType:      "CONTAINS",
		DestinationType: "CONTAINED_IN",
		Description:     "Structural containment.",
		Color:           "#a78bfa",
	},
	{
		Type:            "DESCRIPTIVE",
		Nature:          EdgeNatureSub,
		SourceType:      "HAS_PROPERTY",
		DestinationType: "PROPERTY_OF",
		Description:     "Attribute or property association.",
		Color:           "#f472b6",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "REFERENCES",
		DestinationType: "REFERENCED_BY",
		Description:     "Associative citation or mention.",
		Color:           "#10b981",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "CITES",
		DestinationType: "CITED_BY",
		Description:     "Academic or formal citation.",
		Color:           "#059669",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "RELATED_TO",
		DestinationType: "RELATED_TO",
		Description:     "Horizontal semantic relationship.",
		Color:           "#f59e0b",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "MENTIONS",
		DestinationType: "MENTIONED_BY",
		Description:     "Brief or casual reference.",
		Color:           "#34d399",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "CRITIQUES",
		DestinationType: "CRITIQUED_BY",
		Description:     "Critical analysis or counterpoint.",
		Color:           "#ef4444",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "SUPPORTS",
		DestinationType: "SUPPORTED_BY",
		Description:     "Evidence or endorsement.",
		Color:           "#22c55e",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "CONTRADICTS",
		DestinationType: "CONTRADICTED_BY",
		Description:     "Opposing claim or result.",
		Color:           "#f97316",
	},
	{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "DEPENDS_ON",
		DestinationType: "REQUIRED_BY",
		Description:     "Prerequisite or dependency.",
		Color:           "#eab308",
	},
}
