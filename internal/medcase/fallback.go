package medcase

// Bank holds hand-authored cases used when generation fails: provider
// errors after the scheduler's final retry, timeouts, and validation
// rejects all land here. Every case in the bank passes DefaultValidators,
// so Get is total and the session layer never sees a generation failure.
type Bank struct {
	byDifficulty map[Difficulty][]Case
}

// NewBank returns a bank seeded with the built-in cases.
func NewBank() *Bank {
	b := &Bank{byDifficulty: make(map[Difficulty][]Case)}
	for _, c := range builtinCases {
		b.byDifficulty[c.Difficulty] = append(b.byDifficulty[c.Difficulty], c)
	}
	return b
}

// Get returns a fallback case for the given difficulty. An unknown or
// unstocked difficulty falls back to basic, which is always stocked.
func (b *Bank) Get(d Difficulty) Case {
	cases := b.byDifficulty[d]
	if len(cases) == 0 {
		cases = b.byDifficulty[DifficultyBasic]
	}
	c := cases[0]
	c.Fallback = true
	return c
}

var builtinCases = []Case{
	{
		ID: "fallback-basic-chest-pain",
		Demographics: Demographics{
			Age:    28,
			Gender: "male",
		},
		Vitals: Vitals{
			BloodPressure:    "125/75",
			HeartRate:        88,
			RespiratoryRate:  16,
			Temperature:      37.0,
			OxygenSaturation: 98,
		},
		ChiefComplaint: "Sudden onset chest pain for 2 hours",
		PresentingSymptoms: []string{
			"sharp left-sided chest pain",
			"palpitations",
			"tingling in fingers",
			"feeling of impending doom",
		},
		History: History{
			PresentIllness: "Pain began suddenly while preparing for a work presentation. Sharp, non-radiating, worse with deep breathing. Similar brief episode one month ago that resolved spontaneously.",
			PastMedical:    []string{"generalized anxiety disorder"},
			Medications:    []string{"none"},
			Allergies:      []string{"no known drug allergies"},
			SocialHistory:  "Non-smoker, occasional alcohol, works in finance under high stress",
		},
		PhysicalExam: []string{
			"anxious-appearing, hyperventilating",
			"heart regular rate and rhythm, no murmurs",
			"lungs clear to auscultation bilaterally",
			"chest wall non-tender",
		},
		LabResults: map[string]LabResult{
			"troponin": {Value: 0.02, Unit: "ng/mL", Reference: "<0.04"},
			"wbc":      {Value: 7.5, Unit: "K/uL", Reference: "4.5-11.0"},
			"hgb":      {Value: 14.2, Unit: "g/dL", Reference: "13.5-17.5"},
		},
		ExpectedDiagnoses: Diagnoses{
			Primary: "Anxiety-induced chest pain",
			Differential: []string{
				"acute coronary syndrome",
				"pulmonary embolism",
				"costochondritis",
			},
		},
		TriageLevel: 3,
		EducationalPoints: []string{
			"Anxiety is a diagnosis of exclusion in chest pain; cardiac causes must be ruled out first",
			"Normal troponin and ECG with reproducible symptoms support a non-cardiac etiology",
			"Young patients with panic symptoms still warrant ESI level 3 workup",
		},
		Difficulty: DifficultyBasic,
	},
	{
		ID: "fallback-intermediate-dyspnea",
		Demographics: Demographics{
			Age:    45,
			Gender: "female",
		},
		Vitals: Vitals{
			BloodPressure:    "142/88",
			HeartRate:        102,
			RespiratoryRate:  24,
			Temperature:      37.8,
			OxygenSaturation: 92,
		},
		ChiefComplaint: "Progressive shortness of breath over 3 days",
		PresentingSymptoms: []string{
			"exertional dyspnea",
			"dry cough",
			"low-grade fever",
			"fatigue",
		},
		History: History{
			PresentIllness: "Gradual onset dyspnea beginning 3 days ago, now present at rest. Dry cough and subjective fevers. Husband had a febrile respiratory illness last week.",
			PastMedical:    []string{"hypertension", "obesity"},
			Medications:    []string{"lisinopril 10mg daily"},
			Allergies:      []string{"penicillin (rash)"},
			SocialHistory:  "Never smoker, works as a schoolteacher",
		},
		PhysicalExam: []string{
			"mild respiratory distress, speaking in full sentences",
			"bilateral crackles at lung bases",
			"no lower extremity edema",
			"oxygen saturation 92% on room air",
		},
		LabResults: map[string]LabResult{
			"wbc":       {Value: 12.5, Unit: "K/uL", Reference: "4.5-11.0"},
			"troponin":  {Value: 0.01, Unit: "ng/mL", Reference: "<0.04"},
			"d-dimer":   {Value: 0.4, Unit: "ug/mL", Reference: "<0.5"},
			"sars-cov2": {Value: "positive", Unit: "", Reference: "negative"},
		},
		Imaging: []string{
			"Chest X-ray: bilateral peripheral ground-glass opacities",
		},
		ExpectedDiagnoses: Diagnoses{
			Primary: "COVID-19 pneumonia",
			Differential: []string{
				"community-acquired bacterial pneumonia",
				"pulmonary embolism",
				"congestive heart failure exacerbation",
			},
		},
		TriageLevel: 2,
		EducationalPoints: []string{
			"Hypoxemia below 94% in viral pneumonia is an indication for admission",
			"Bilateral ground-glass opacities are the classic radiographic pattern of COVID-19 pneumonia",
			"A normal d-dimer makes pulmonary embolism unlikely in a low-risk patient",
		},
		Difficulty: DifficultyIntermediate,
	},
	{
		ID: "fallback-advanced-abdominal-pain",
		Demographics: Demographics{
			Age:    62,
			Gender: "male",
		},
		Vitals: Vitals{
			BloodPressure:    "85/55",
			HeartRate:        125,
			RespiratoryRate:  22,
			Temperature:      38.5,
			OxygenSaturation: 95,
		},
		ChiefComplaint: "Severe abdominal pain and vomiting",
		PresentingSymptoms: []string{
			"diffuse severe abdominal pain out of proportion to exam",
			"repeated vomiting",
			"one episode of bloody diarrhea",
		},
		History: History{
			PresentIllness: "Sudden severe periumbilical pain starting 6 hours ago, constant and worsening. Pain is far more severe than the abdominal exam suggests. Known atrial fibrillation, recently stopped anticoagulation after a dental procedure.",
			PastMedical:    []string{"atrial fibrillation", "coronary artery disease", "hyperlipidemia"},
			Medications:    []string{"metoprolol 50mg twice daily", "atorvastatin 40mg daily", "apixaban (held for 1 week)"},
			Allergies:      []string{"no known drug allergies"},
			SocialHistory:  "Former smoker, 30 pack-years, quit 8 years ago",
		},
		PhysicalExam: []string{
			"ill-appearing, diaphoretic",
			"irregularly irregular tachycardia",
			"abdomen soft with minimal tenderness despite severe reported pain",
			"cool extremities, delayed capillary refill",
		},
		LabResults: map[string]LabResult{
			"wbc":        {Value: 18.5, Unit: "K/uL", Reference: "4.5-11.0"},
			"lactate":    {Value: 5.8, Unit: "mmol/L", Reference: "0.5-2.2"},
			"creatinine": {Value: 2.1, Unit: "mg/dL", Reference: "0.7-1.3"},
			"potassium":  {Value: 5.2, Unit: "mmol/L", Reference: "3.5-5.0"},
		},
		Imaging: []string{
			"CT angiogram abdomen: filling defect in the superior mesenteric artery with bowel wall thickening",
		},
		ExpectedDiagnoses: Diagnoses{
			Primary: "Acute mesenteric ischemia",
			Differential: []string{
				"perforated viscus",
				"ruptured abdominal aortic aneurysm",
				"acute pancreatitis",
			},
		},
		TriageLevel: 1,
		EducationalPoints: []string{
			"Pain out of proportion to exam in a patient with atrial fibrillation is mesenteric ischemia until proven otherwise",
			"Elevated lactate with leukocytosis suggests bowel infarction and mandates emergent surgical consultation",
			"Interrupted anticoagulation in atrial fibrillation sharply raises embolic risk",
		},
		Difficulty: DifficultyAdvanced,
	},
}
