package drugdb

import "github.com/giygas/parkinsons-assistant/drugdb/entities"

// parkinsonsDrugs is the reference dataset, in display order
var parkinsonsDrugs = []entities.DrugRecord{
	{
		ID:                "levodopa",
		CommonSideEffects: []string{"Nausea", "Dizziness", "Headache", "Dry mouth"},
		SevereSideEffects: []string{"Dyskinesia", "On-off phenomenon", "Hallucinations"},
		Resources: []entities.Resource{
			{Name: "Mayo Clinic - Levodopa", URL: "https://www.mayoclinic.org/drugs-supplements/levodopa-oral-route/side-effects/drg-20064498"},
			{Name: "NIH Study on Levodopa", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5517545/"},
		},
		CaseStudies: []entities.CaseStudy{
			{Title: "Long-term Levodopa Treatment", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC6693388/"},
		},
	},
	{
		ID:                "pramipexole",
		CommonSideEffects: []string{"Nausea", "Drowsiness", "Insomnia", "Constipation"},
		SevereSideEffects: []string{"Impulse control disorders", "Hallucinations", "Sudden sleep episodes"},
		Resources: []entities.Resource{
			{Name: "Medline Plus - Pramipexole", URL: "https://medlineplus.gov/druginfo/meds/a697029.html"},
			{Name: "NIH Research on Pramipexole", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5040537/"},
		},
		CaseStudies: []entities.CaseStudy{
			{Title: "Pramipexole and Impulse Control Disorders", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5874453/"},
		},
	},
	{
		ID:                "ropinirole",
		CommonSideEffects: []string{"Nausea", "Dizziness", "Fatigue", "Headache"},
		SevereSideEffects: []string{"Impulse control disorders", "Hypotension", "Hallucinations"},
		Resources: []entities.Resource{
			{Name: "RxList - Ropinirole", URL: "https://www.rxlist.com/requip-side-effects-drug-center.htm"},
			{Name: "NIH Ropinirole Study", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC3662253/"},
		},
		CaseStudies: []entities.CaseStudy{
			{Title: "Ropinirole Extended Release Study", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC4847268/"},
		},
	},
	{
		ID:                "amantadine",
		CommonSideEffects: []string{"Nausea", "Dizziness", "Insomnia", "Purple mottling of skin"},
		SevereSideEffects: []string{"Hallucinations", "Edema", "Heart rhythm problems"},
		Resources: []entities.Resource{
			{Name: "Drugs.com - Amantadine", URL: "https://www.drugs.com/mtm/amantadine.html"},
			{Name: "NIH Amantadine Review", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5015353/"},
		},
		CaseStudies: []entities.CaseStudy{
			{Title: "Amantadine for Dyskinesia", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5447072/"},
		},
	},
	{
		ID:                "selegiline",
		CommonSideEffects: []string{"Nausea", "Dizziness", "Insomnia", "Dry mouth"},
		SevereSideEffects: []string{"Hypertensive crisis (with tyramine-rich foods)", "Hallucinations", "Confusion"},
		Resources: []entities.Resource{
			{Name: "WebMD - Selegiline", URL: "https://www.webmd.com/drugs/2/drug-8885/selegiline-oral/details"},
			{Name: "NIH Selegiline Research", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5382063/"},
		},
		CaseStudies: []entities.CaseStudy{
			{Title: "Selegiline as Early Treatment", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC6287681/"},
		},
	},
	{
		ID:                "entacapone",
		CommonSideEffects: []string{"Nausea", "Urine discoloration", "Diarrhea", "Abdominal pain"},
		SevereSideEffects: []string{"Severe diarrhea", "Hallucinations", "Dyskinesia"},
		Resources: []entities.Resource{
			{Name: "MedlinePlus - Entacapone", URL: "https://medlineplus.gov/druginfo/meds/a699017.html"},
			{Name: "NIH Entacapone Study", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC5367617/"},
		},
		CaseStudies: []entities.CaseStudy{
			{Title: "Entacapone with Levodopa Study", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC4764999/"},
		},
	},
}

// generalResources are appended to every answer regardless of the drugs mentioned
var generalResources = []entities.Resource{
	{Name: "Parkinson's Foundation", URL: "https://www.parkinson.org/"},
	{Name: "Michael J. Fox Foundation", URL: "https://www.michaeljfox.org/"},
	{Name: "American Parkinson Disease Association", URL: "https://www.apdaparkinson.org/"},
	{Name: "NIH Parkinson's Disease Information", URL: "https://www.ninds.nih.gov/Disorders/All-Disorders/Parkinsons-Disease-Information-Page"},
	{Name: "World Parkinson Coalition", URL: "https://www.worldpdcoalition.org/"},
}
